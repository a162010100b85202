package notifications

import (
	"context"
	"fmt"
	"io"
)

type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier { return &WriterNotifier{w: w} }

func (n *WriterNotifier) Notify(_ context.Context, notice Notice) error {
	mark := "•"
	switch notice.Level {
	case LevelSuccess:
		mark = "✔"
	case LevelError:
		mark = "✖"
	}

	_, err := fmt.Fprintf(n.w, "%s %s\n", mark, notice.Message)
	return err
}
