package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"bookit/internal/chat"
	"bookit/internal/domain"
)

// authWait bounds how long a command waits for the socket handshake before
// carrying on over REST alone.
const authWait = 5 * time.Second

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "chat", Short: "Real-time conversations"}
	cmd.AddCommand(chatListCmd(), chatNewCmd(), chatOpenCmd(), chatSendCmd(), chatWatchCmd())
	return cmd
}

func chatListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations with unread counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Chat(nil)
			if err != nil {
				return err
			}
			me, _ := appCtx.Auth.Current()
			chats, err := s.FetchChats(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, chats, func(w io.Writer) error {
				rows := make([][]any, 0, len(chats))
				for _, c := range chats {
					last := ""
					if c.LastMessage != nil {
						last = clip(c.LastMessage.Content, 40)
					}
					rows = append(rows, []any{c.ID, peerName(c, me.ID), c.UnreadCount, last})
				}
				return table(w, "ID\tWITH\tUNREAD\tLAST", rows)
			})
		},
	}
	addJSONFlag(cmd)
	return cmd
}

// chat new <userID> [--booking id]
func chatNewCmd() *cobra.Command {
	var booking string
	cmd := &cobra.Command{
		Use:   "new <userID>",
		Short: "Start a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Chat(nil)
			if err != nil {
				return err
			}
			c, err := s.CreateChat(cmd.Context(), domain.CreateChatRequest{
				Participant: domain.UserID(args[0]),
				Booking:     domain.BookingID(booking),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&booking, "booking", "", "booking the conversation is about")
	return cmd
}

// chat open <chatID>: history, then live messages; stdin lines are sent.
func chatOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <chatID>",
		Short: "Open a conversation interactively (/quit to leave)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, _ := appCtx.Auth.Current()
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), me.ID)
			s, err := startChat(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.OpenChat(cmd.Context(), domain.ChatID(args[0])); err != nil {
				return err
			}

			lines := readLines(cmd.InOrStdin())
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case line, ok := <-lines:
					if !ok || line == "/quit" {
						return nil
					}
					if strings.TrimSpace(line) == "" {
						continue
					}
					if _, err := s.SendMessage(cmd.Context(), line); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), "send failed:", err)
					}
				}
			}
		},
	}
}

// chat send <chatID> <message>
func chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <chatID> <message>",
		Short: "Send one message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := startChat(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()
			if _, err := s.OpenChat(cmd.Context(), domain.ChatID(args[0])); err != nil {
				return err
			}
			m, err := s.SendMessage(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", m.ID)
			return nil
		},
	}
}

// chat watch: print every incoming message until interrupted.
func chatWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow new messages across all conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, _ := appCtx.Auth.Current()
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), me.ID)
			p.all = true
			s, err := startChat(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer s.Close()
			chats, err := s.FetchChats(cmd.Context())
			if err != nil {
				return err
			}
			p.prime(chats)
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %d conversations, ^C to stop\n", len(chats))
			<-cmd.Context().Done()
			return nil
		},
	}
}

// startChat builds the sync, connects and waits briefly for the handshake.
// p may be nil.
func startChat(ctx context.Context, p *printer) (*chat.Sync, error) {
	authed := make(chan struct{})
	var once sync.Once
	s, err := appCtx.Chat(func(snap chat.Snapshot) {
		if snap.Authenticated {
			once.Do(func() { close(authed) })
		}
		if p != nil {
			p.update(snap)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	select {
	case <-authed:
	case <-time.After(authWait):
		appCtx.Log.Warn("chat socket not authenticated yet; continuing over REST")
	case <-ctx.Done():
		_ = s.Close()
		return nil, ctx.Err()
	}
	return s, nil
}

// printer renders snapshot changes as lines of text.
type printer struct {
	out, errOut io.Writer
	me          domain.UserID

	// all follows list previews instead of the open conversation.
	all bool

	mu     sync.Mutex
	seen   map[domain.MessageID]bool
	names  map[domain.UserID]string
	open   domain.ChatID
	typing bool
	errMsg string
}

func newPrinter(out, errOut io.Writer, me domain.UserID) *printer {
	return &printer{
		out:    out,
		errOut: errOut,
		me:     me,
		seen:   make(map[domain.MessageID]bool),
		names:  make(map[domain.UserID]string),
	}
}

// prime marks existing previews as seen so watch only prints new traffic.
func (p *printer) prime(chats []domain.Chat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range chats {
		p.learn(c)
		if c.LastMessage != nil {
			p.seen[c.LastMessage.ID] = true
		}
	}
}

func (p *printer) update(s chat.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Error != p.errMsg {
		p.errMsg = s.Error
		if s.Error != "" {
			fmt.Fprintln(p.errOut, "!", s.Error)
		}
	}

	if p.all {
		for _, c := range s.Chats {
			p.learn(c)
			if m := c.LastMessage; m != nil && !p.seen[m.ID] {
				p.seen[m.ID] = true
				fmt.Fprintf(p.out, "[%s] %s", c.ID, p.line(*m))
			}
		}
		return
	}

	if s.Active != nil && s.Active.ID != p.open {
		p.open = s.Active.ID
		p.learn(*s.Active)
		fmt.Fprintf(p.errOut, "-- %s --\n", peerName(*s.Active, p.me))
	}
	for _, m := range s.Messages {
		if p.seen[m.ID] {
			continue
		}
		p.seen[m.ID] = true
		fmt.Fprint(p.out, p.line(m))
	}
	typing := len(s.Typing) > 0
	if typing && !p.typing {
		fmt.Fprintf(p.errOut, "%s is typing...\n", p.name(s.Typing[0]))
	}
	p.typing = typing
}

func (p *printer) learn(c domain.Chat) {
	for _, u := range c.Participants {
		if u.Name != "" {
			p.names[u.ID] = u.Name
		}
	}
}

func (p *printer) name(id domain.UserID) string {
	if id == p.me {
		return "you"
	}
	if n, ok := p.names[id]; ok {
		return n
	}
	return id.String()
}

func (p *printer) line(m domain.Message) string {
	ts := m.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("%s %s: %s\n", ts.Local().Format(time.Kitchen), p.name(m.Sender), m.Content)
}

func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func peerName(c domain.Chat, me domain.UserID) string {
	if u, ok := c.Peer(me); ok {
		return u.Name
	}
	return "-"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
