package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/domain"
)

const usage = `commands:
  list                                  show persisted and staged slots
  add <YYYY-MM-DD> <HH:MM> <HH:MM>      stage a slot
  remove <n|id>                         remove a slot by list number or id
  submit                                save all staged slots
  refresh                               reload saved slots
  meetings                              show upcoming and past interviews
  help                                  show this text
  quit                                  leave`

// dashboarder is the slice of the API client the meetings command uses.
type dashboarder interface {
	Dashboard(ctx context.Context) (api.Dashboard, error)
}

type shell struct {
	ws       *availability.Workspace
	meetings dashboarder
	loc      *time.Location
	out      io.Writer
}

func newShell(ws *availability.Workspace, meetings dashboarder, policy availability.Policy, out io.Writer) *shell {
	return &shell{ws: ws, meetings: meetings, loc: policy.Zone(), out: out}
}

// run loads the saved slots, then executes commands from in until EOF or quit.
func (s *shell) run(ctx context.Context, in io.Reader) error {
	if err := s.ws.Refresh(ctx); err != nil {
		return fmt.Errorf("load slots: %w", err)
	}
	s.list()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if quit := s.exec(ctx, strings.Fields(sc.Text())); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// exec runs one command and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return false
	}
	var err error
	switch args[0] {
	case "list", "ls":
		s.list()
	case "add":
		err = s.add(args[1:])
	case "remove", "rm":
		err = s.remove(ctx, args[1:])
	case "submit":
		err = s.submit(ctx)
	case "refresh":
		if err = s.ws.Refresh(ctx); err == nil {
			s.list()
		}
	case "meetings":
		err = s.showMeetings(ctx)
	case "help", "?":
		fmt.Fprintln(s.out, usage)
	case "quit", "exit":
		return true
	default:
		err = fmt.Errorf("unknown command %q (try help)", args[0])
	}
	if err != nil {
		fmt.Fprintln(s.out, "error:", describe(err))
	}
	return false
}

func (s *shell) list() {
	slots := s.ws.Slots()
	if len(slots) == 0 {
		fmt.Fprintln(s.out, "no slots yet")
		return
	}
	for i, sl := range slots {
		state := "saved"
		if sl.Origin == domain.OriginStaged {
			state = "staged"
		}
		start := sl.StartTime.In(s.loc)
		fmt.Fprintf(s.out, "%2d. %s %s-%s  %-6s %s\n", i+1,
			start.Format("Mon 2006-01-02"), start.Format("15:04"), sl.EndTime.In(s.loc).Format("15:04"),
			state, sl.ID)
	}
}

func (s *shell) add(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: add <YYYY-MM-DD> <HH:MM> <HH:MM>")
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", args[0]+" "+args[1], s.loc)
	if err != nil {
		return fmt.Errorf("bad start: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", args[0]+" "+args[2], s.loc)
	if err != nil {
		return fmt.Errorf("bad end: %w", err)
	}
	slot, err := s.ws.Add(start, end)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "staged %s\n", slot.ID)
	return nil
}

func (s *shell) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <n|id>")
	}
	id, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.ws.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "removed")
	return nil
}

// resolve accepts either a 1-based list number or a slot ID.
func (s *shell) resolve(arg string) (uuid.UUID, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		slots := s.ws.Slots()
		if n < 1 || n > len(slots) {
			return uuid.UUID{}, fmt.Errorf("no slot number %d", n)
		}
		return slots[n-1].ID, nil
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%q is neither a list number nor a slot id", arg)
	}
	return id, nil
}

func (s *shell) submit(ctx context.Context) error {
	n := len(s.ws.Staged())
	if err := s.ws.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %d slot(s)\n", n)
	s.list()
	return nil
}

func (s *shell) showMeetings(ctx context.Context) error {
	d, err := s.meetings.Dashboard(ctx)
	if err != nil {
		return err
	}
	show := func(title string, ms []api.Meeting) {
		fmt.Fprintf(s.out, "%s (%d)\n", title, len(ms))
		for _, m := range ms {
			fmt.Fprintf(s.out, "  %s  %s  %s with %s\n",
				m.StartTime.In(s.loc).Format("Mon 2006-01-02 15:04"), m.Status, m.Title, m.Recruiter.Name)
		}
	}
	show("upcoming", d.Upcoming)
	show("past", d.Past)
	return nil
}

// describe strips call-site prefixes so the user sees only the reason.
func describe(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	if errors.Is(err, domain.ErrBusy) {
		return domain.ErrBusy.Error()
	}
	return msg
}
