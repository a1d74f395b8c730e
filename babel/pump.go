package babel

// Sink is a window the pipeline can lay text out in.
type Sink interface {
	Window
	HardBreak()
	SetIndentation()
	ResetIndentation()
	Print(r Result)
}

// Pump drains b into s until the text runs out, the page is full or a
// malformed character is met, and returns which of them stopped it.
// After NewScreen the caller clears the page and pumps again to
// continue.
func Pump(b *Buffer, s Sink) Getc {
	for {
		r := b.GetChar(s)
		switch r.Code {
		case PrintChar:
			s.Print(r)
		case NewLine:
			s.HardBreak()
		case SetIndent:
			s.SetIndentation()
		case ClearIndent:
			s.ResetIndentation()
		case BeginGloss:
		default:
			return r.Code
		}
	}
}
