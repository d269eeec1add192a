package distribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kenxcomp/kenotex/internal/config"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/logger"
)

// Status is the delivery outcome of one block.
type Status int

const (
	StatusPending Status = iota
	StatusSent
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Result tracks one block through the pipeline.
type Result struct {
	Index  int
	Block  editor.Block
	Target Target
	Status Status
	Err    error
}

// maxInFlight bounds concurrent osascript processes. Apple's
// automation endpoints serialize poorly under heavy parallelism.
const maxInFlight = 4

// Dispatcher delivers classified blocks to their targets.
type Dispatcher struct {
	dest   config.Destinations
	runner Runner
	ledger *Ledger
	now    func() time.Time
}

// NewDispatcher wires a dispatcher. The ledger may be nil when the
// database could not be opened; delivery still works, unrecorded.
func NewDispatcher(dest config.Destinations, runner Runner, ledger *Ledger) *Dispatcher {
	return &Dispatcher{dest: dest, runner: runner, ledger: ledger, now: time.Now}
}

// Plan classifies every block up front so the overlay can list them
// before anything is sent. Blocks wrapped as comments on an earlier
// run start out skipped.
func (d *Dispatcher) Plan(blocks []editor.Block) []Result {
	plan := make([]Result, len(blocks))
	for i, b := range blocks {
		r := Result{Index: i, Block: b, Target: Classify(b.Text), Status: StatusPending}
		if IsProcessed(b.Text) {
			r.Status = StatusSkipped
		}
		plan[i] = r
	}
	return plan
}

// Dispatch delivers every block of the plan concurrently. Results
// arrive on the returned channel as blocks finish, in completion
// order; the channel closes when all are done.
func (d *Dispatcher) Dispatch(ctx context.Context, noteID string, plan []Result) <-chan Result {
	results := make(chan Result, len(plan))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)

	for _, r := range plan {
		g.Go(func() error {
			res := d.deliver(ctx, r)
			d.record(ctx, noteID, res)
			results <- res
			return nil
		})
	}
	go func() {
		g.Wait()
		close(results)
	}()
	return results
}

func (d *Dispatcher) deliver(ctx context.Context, r Result) Result {
	if r.Status != StatusPending {
		return r
	}
	var err error
	switch r.Target {
	case TargetTask:
		err = d.sendTask(ctx, r.Block.Text)
	case TargetCalendar:
		err = d.sendCalendar(ctx, r.Block.Text)
	default:
		err = d.sendNote(ctx, r.Block.Text)
	}
	switch {
	case errors.Is(err, errTargetDisabled):
		r.Status = StatusSkipped
	case err != nil:
		r.Status = StatusFailed
		r.Err = err
	default:
		r.Status = StatusSent
	}
	return r
}

// errTargetDisabled marks a delivery that was not attempted because
// the destination is switched off in config.
var errTargetDisabled = errors.New("target disabled")

func (d *Dispatcher) sendTask(ctx context.Context, text string) error {
	if !d.dest.Reminders {
		return errTargetDisabled
	}
	content := stripTag(text, tagTask)

	// A checkbox list becomes one reminder per item.
	if items := checkboxItems(content); len(items) > 0 {
		for _, item := range items {
			script := reminderScript(item, "", time.Time{}, false, d.dest.RemindersList)
			if err := d.runner.RunAppleScript(ctx, script); err != nil {
				return fmt.Errorf("reminder %q: %w", item, err)
			}
		}
		return nil
	}

	title, body := titleBody(content)
	due, hasDue := ParseTimeAt(content, d.now())
	script := reminderScript(title, body, due, hasDue, d.dest.RemindersList)
	if err := d.runner.RunAppleScript(ctx, script); err != nil {
		return fmt.Errorf("reminder %q: %w", title, err)
	}
	return nil
}

func (d *Dispatcher) sendCalendar(ctx context.Context, text string) error {
	if !d.dest.Calendar {
		return errTargetDisabled
	}
	content := stripTag(text, tagCalendar)
	title, body := titleBody(content)

	start, ok := ParseTimeAt(content, d.now())
	if !ok {
		return fmt.Errorf("event %q: no recognizable time", title)
	}
	script := calendarScript(title, body, start, d.dest.CalendarName)
	if err := d.runner.RunAppleScript(ctx, script); err != nil {
		return fmt.Errorf("event %q: %w", title, err)
	}
	return nil
}

func (d *Dispatcher) sendNote(ctx context.Context, text string) error {
	app := d.dest.Notes
	if app == "" || app == "off" {
		return errTargetDisabled
	}
	content := stripTag(text, tagNote)
	title, body := titleBody(content)

	switch app {
	case "apple_notes":
		return d.runner.RunAppleScript(ctx, appleNoteScript(title, body, d.dest.NotesFolder))
	case "bear":
		return d.runner.OpenURL(ctx, bearURL(title, body))
	case "obsidian":
		return d.runner.OpenURL(ctx, obsidianURL(title, body, d.dest.ObsidianVault))
	}
	return fmt.Errorf("unknown notes app %q", app)
}

func (d *Dispatcher) record(ctx context.Context, noteID string, res Result) {
	if d.ledger == nil {
		return
	}
	if err := d.ledger.Record(ctx, noteID, res.Block.Text, res.Target, res.Status); err != nil {
		logger.Error("ledger write failed: %v", err)
	}
}
