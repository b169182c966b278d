package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loveletters/internal/client/models"
)

func (a *App) Inbox(ctx context.Context) error {
	msgs, err := a.messages.Inbox(ctx)
	if err != nil {
		return err
	}
	printMessages(a.out, msgs, "From")
	return nil
}

func (a *App) Sent(ctx context.Context) error {
	msgs, err := a.messages.Sent(ctx)
	if err != nil {
		return err
	}
	printMessages(a.out, msgs, "To")
	return nil
}

func (a *App) Drafts(ctx context.Context) error {
	msgs, err := a.messages.Drafts(ctx)
	if err != nil {
		return err
	}
	printMessages(a.out, msgs, "To")
	return nil
}

func (a *App) Compose(ctx context.Context) error {
	recipient, err := getSimpleText(a.reader, "To (username)", a.out)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Your letter", a.out)
	if err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Secret code (leave empty for none)", a.out)
	if err != nil {
		return err
	}

	draft, err := getConfirmation(a.reader, "Save as draft?", a.out)
	if err != nil {
		return err
	}

	msg := models.NewMessage{Recipient: recipient, Content: content, IsDraft: draft}
	if code != "" {
		msg.SecretCode = &code
	}

	sent, err := a.messages.Send(ctx, msg)
	if err != nil {
		return err
	}

	if sent.IsDraft {
		fmt.Fprintf(a.out, "Draft saved (%s)\n", sent.ID)
	} else {
		fmt.Fprintf(a.out, "Letter sent to %s (%s)\n", sent.Recipient, sent.ID)
	}
	return nil
}

// Show prints one message. Opening an unread letter addressed to the current
// user marks it as read; a locked one asks for its code first.
func (a *App) Show(ctx context.Context, id string) error {
	msg, err := a.messages.Get(ctx, id)
	if err != nil {
		return err
	}

	me := a.auth.CurrentUser()
	switch {
	case msg.NeedsCode(me):
		fmt.Fprintln(a.out, "This letter is locked.")
		if err := a.unlock(ctx, id); err != nil {
			return err
		}
	case msg.OpensOnView(me):
		if err := a.messages.MarkRead(ctx, id); err != nil {
			return err
		}
	default:
		printMessage(a.out, msg, me)
		return nil
	}

	if msg, err = a.messages.Get(ctx, id); err != nil {
		return err
	}
	printMessage(a.out, msg, me)
	return nil
}

func (a *App) Unlock(ctx context.Context, id string) error {
	if err := a.unlock(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message unlocked")
	return nil
}

func (a *App) unlock(ctx context.Context, id string) error {
	code, err := getSimpleText(a.reader, "Enter the secret code", a.out)
	if err != nil {
		return err
	}
	return a.messages.Unlock(ctx, id, code)
}

func (a *App) Read(ctx context.Context, id string) error {
	if err := a.messages.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message marked as read")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := getConfirmation(a.reader, "Delete this letter?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := a.messages.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message deleted")
	return nil
}
