package pixmap

// Frame contains a set of operations for drawing.
type Frame struct {
	DrawOperations []DrawOperation
}

// Draw draws the operations of the frame in order.
func (frame *Frame) Draw(paintEngine PaintEngine) error {
	for _, drawOperation := range frame.DrawOperations {
		err := drawOperation.Draw(paintEngine)
		if err != nil {
			return err
		}
	}
	return nil
}

// Present draws the frame between Begin and End of paintEngine.
func (frame *Frame) Present(paintEngine PaintEngine) error {
	if err := paintEngine.Begin(); err != nil {
		return err
	}

	if err := frame.Draw(paintEngine); err != nil {
		if endErr := paintEngine.End(); endErr != nil {
			log.WithError(endErr).Warn("Can't end the paint engine after a failed frame")
		}
		return err
	}

	return paintEngine.End()
}
