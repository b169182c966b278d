package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "Username:  %s\n", u.UserName)
	fmt.Fprintf(w, "Joined:    %s\n", formatTime(&u.CreatedAt))
	fmt.Fprintf(w, "Last seen: %s\n", formatTime(u.LastSeen))
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No other users yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tLAST SEEN")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\n", u.UserName, formatTime(u.LastSeen))
	}
	_ = tw.Flush()
}

// printMessages lists a folder. peer names the column holding the other
// party: "From" for received letters, "To" otherwise.
func printMessages(w io.Writer, msgs []models.Message, peer string) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No letters here")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\tDATE\tSTATUS\n", strings.ToUpper(peer))
	for _, m := range msgs {
		other := m.Recipient
		if peer == "From" {
			other = m.Sender
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, other, formatTime(&m.CreatedAt), status(&m))
	}
	_ = tw.Flush()
}

func status(m *models.Message) string {
	var flags []string
	if m.IsDraft {
		flags = append(flags, "draft")
	}
	if m.IsLocked() {
		flags = append(flags, "locked")
	}
	if m.ReadAt == nil {
		flags = append(flags, "unread")
	} else {
		flags = append(flags, "read")
	}
	return strings.Join(flags, ",")
}

// printMessage shows a single letter. Content of a letter still waiting for
// its code is withheld from the recipient.
func printMessage(w io.Writer, m *models.Message, me string) {
	fmt.Fprintf(w, "From:   %s\n", m.Sender)
	fmt.Fprintf(w, "To:     %s\n", m.Recipient)
	fmt.Fprintf(w, "Date:   %s\n", formatTime(&m.CreatedAt))
	fmt.Fprintf(w, "Status: %s\n", status(m))
	if m.ReadAt != nil {
		fmt.Fprintf(w, "Read:   %s\n", formatTime(m.ReadAt))
	}
	fmt.Fprintln(w)

	if m.NeedsCode(me) {
		fmt.Fprintln(w, "[locked]")
		return
	}
	fmt.Fprintln(w, m.Content)
}
