package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrzor/crumbtrail/internal/host"
)

// Player replays a Script against an App.
type Player struct {
	app      *host.App
	logger   *slog.Logger
	contents []*host.WebContents
}

// NewPlayer creates a player for app. A nil logger uses slog.Default.
func NewPlayer(app *host.App, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{app: app, logger: logger}
}

// Contents returns the contents created so far, in creation order.
func (p *Player) Contents() []*host.WebContents {
	return p.contents
}

// Play runs every step of s. It stops at the first failing step or when
// ctx is done.
func (p *Player) Play(ctx context.Context, s *Script) error {
	loop := p.app.Loop()
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.step(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
		if step.Action == ActionTick {
			loop.Tick()
			continue
		}
		loop.Drain()
	}
	return nil
}

func (p *Player) step(st Step) error {
	switch st.Action {
	case ActionReady:
		return p.app.Ready()

	case ActionCreateContents:
		contents, err := p.app.CreateWebContents()
		if contents != nil {
			p.contents = append(p.contents, contents)
		}
		return err

	case ActionDestroyContents:
		contents, err := p.lookup(st.Contents)
		if err != nil {
			return err
		}
		return contents.Destroy()

	case ActionEmit:
		target, err := p.target(st)
		if err != nil {
			return err
		}
		handled, err := target.Emit(st.Event, st.Args...)
		p.logger.Debug("Replayed event",
			"target", target.Name(),
			"event", st.Event,
			"handled", handled)
		return err

	case ActionTick:
		return nil

	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

func (p *Player) target(st Step) (*host.Object, error) {
	switch st.Target {
	case TargetApp:
		return p.app.Object, nil
	case TargetScreen:
		return p.app.Screen()
	case TargetPower:
		return p.app.PowerMonitor()
	case TargetContents:
		contents, err := p.lookup(st.Contents)
		if err != nil {
			return nil, err
		}
		return contents.Object, nil
	default:
		return nil, fmt.Errorf("unknown target %q", st.Target)
	}
}

func (p *Player) lookup(idx int) (*host.WebContents, error) {
	if idx < 0 || idx >= len(p.contents) {
		return nil, fmt.Errorf("contents index %d out of range (%d created)", idx, len(p.contents))
	}
	return p.contents[idx], nil
}
