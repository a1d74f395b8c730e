package babel

import "strconv"

// Getc is what the pull side of the pipeline tells its caller to do.
type Getc int

const (
	Error Getc = iota
	EndOfString
	PrintChar
	NewLine
	NewScreen
	SetIndent
	ClearIndent
	BeginGloss
)

var getcNames = [...]string{
	Error:       "Error",
	EndOfString: "EndOfString",
	PrintChar:   "PrintChar",
	NewLine:     "NewLine",
	NewScreen:   "NewScreen",
	SetIndent:   "SetIndent",
	ClearIndent: "ClearIndent",
	BeginGloss:  "BeginGloss",
}

func (g Getc) String() string {
	if g >= 0 && int(g) < len(getcNames) {
		return getcNames[g]
	}
	return "Getc#" + strconv.Itoa(int(g))
}

// Function numbers accepted by DLL.Call.
const (
	FnInitialise       = 0
	FnTextoutStart     = 10
	FnTextoutAppend    = 11
	FnTextoutGetChar   = 12
	FnTextoutNewScreen = 13
	FnClearGlosses     = 20
	FnNewGloss         = 21
	FnAddGloss         = 22
	FnTestGlosses      = 23
	FnEndSetWindowName = 98
	FnEndGetCharWinNam = 99
	FnSetNameMod       = 100
	FnGetNameMod       = 101
	FnSetWindowName    = 102
	FnGetTextWindow    = 103
	FnGetRCommandMod   = 104
	FnMessageBox       = 105
	FnSelectAdd        = 200
)

// Control bytes embedded in appended text.
const (
	ctlBeginGloss  = 0x01
	ctlEndGloss    = 0x02
	ctlSetIndent   = 0x03
	ctlClearIndent = 0x04
	ctlNewLine     = 0x0A
	ctlReturn      = 0x0D
	ctlItalicOn    = 0x0E
	ctlItalicOff   = 0x0F
)
