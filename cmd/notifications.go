package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications <user>",
	Short: "List a user's notifications",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotifications,
}

var (
	notificationsUnread   bool
	notificationsMarkRead bool
	notificationsLimit    int
)

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.Flags().BoolVar(&notificationsUnread, "unread", false, "Only unread notifications")
	notificationsCmd.Flags().BoolVar(&notificationsMarkRead, "mark-read", false, "Mark everything read after listing")
	notificationsCmd.Flags().IntVarP(&notificationsLimit, "limit", "l", 20, "Maximum notifications to show")
}

func runNotifications(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.lookupUser(args[0])
	if err != nil {
		return err
	}

	notes, err := a.notifications.ListForUser(u.ID, notificationsUnread, notificationsLimit)
	if err != nil {
		return err
	}
	unread, err := a.notifications.UnreadCount(u.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (%d unread)\n\n", headerStyle.Render("NOTIFICATIONS"), u.Username, unread)
	if len(notes) == 0 {
		fmt.Println("Nothing here.")
	}
	for _, n := range notes {
		mark := "•"
		if n.IsRead {
			mark = " "
		}
		fmt.Printf(" %s %s %-12s %s\n",
			mark,
			dateStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")),
			tagStyle.Render(n.Kind),
			n.Content)
	}

	if notificationsMarkRead {
		marked, err := a.notifications.MarkAllRead(u.ID)
		if err != nil {
			return err
		}
		fmt.Printf("\nMarked %d read\n", marked)
	}
	return nil
}
