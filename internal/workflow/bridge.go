package workflow

import (
	"context"

	"menubg/internal/asset"
	"menubg/internal/converter"
)

// QuestionKind says which answer a Question expects.
type QuestionKind int

const (
	AskConfirmConverted QuestionKind = iota
	AskLocateOutput
)

// Question is posted by a Bridge for the presentation goroutine to answer.
type Question struct {
	Kind     QuestionKind
	Layout   asset.Layout
	Process  converter.Process
	Expected string

	reply chan Answer
}

// Answer carries the user's reply to a Question.
type Answer struct {
	Confirmed bool
	Path      string
	Err       error
}

// Answer sends the reply. It must be called exactly once.
func (q Question) Answer(a Answer) {
	q.reply <- a
}

// Bridge is an Asker that forwards every question over a channel, so a
// machine running on a background goroutine can be answered by the goroutine
// that owns the terminal.
type Bridge struct {
	questions chan Question
}

// NewBridge returns a Bridge with an unbuffered question channel.
func NewBridge() *Bridge {
	return &Bridge{questions: make(chan Question)}
}

// Questions receives the pending questions in order.
func (b *Bridge) Questions() <-chan Question { return b.questions }

// ConfirmConverted implements Asker.
func (b *Bridge) ConfirmConverted(ctx context.Context, layout asset.Layout, proc converter.Process) (bool, error) {
	a, err := b.ask(ctx, Question{Kind: AskConfirmConverted, Layout: layout, Process: proc, Expected: layout.ConvertedPath})
	return a.Confirmed, err
}

// LocateOutput implements Asker.
func (b *Bridge) LocateOutput(ctx context.Context, expected string) (string, error) {
	a, err := b.ask(ctx, Question{Kind: AskLocateOutput, Expected: expected})
	return a.Path, err
}

func (b *Bridge) ask(ctx context.Context, q Question) (Answer, error) {
	q.reply = make(chan Answer, 1)
	select {
	case b.questions <- q:
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	}
	select {
	case a := <-q.reply:
		return a, a.Err
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	}
}
