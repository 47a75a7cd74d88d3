// Package hook runs the user's task-start command.
package hook

import (
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/timeattack/internal/session"
)

// Runner executes a shell-style command line each time a task starts.
type Runner struct {
	command string
	// run is replaced in tests.
	run func(cmd *exec.Cmd) error
}

func New(command string) *Runner {
	return &Runner{
		command: command,
		run:     (*exec.Cmd).Run,
	}
}

// Enabled reports whether a command is configured.
func (r *Runner) Enabled() bool {
	return r.command != ""
}

// TaskStarted runs the command for task. The command sees the task through
// TIMEATTACK_* environment variables.
func (r *Runner) TaskStarted(ctx context.Context, task session.Task) error {
	cmd, err := r.build(ctx, task)
	if err != nil || cmd == nil {
		return err
	}

	if err := r.run(cmd); err != nil {
		return errHookFailed.Fmt(cmd.Path).Wrap(err)
	}

	return nil
}

func (r *Runner) build(ctx context.Context, task session.Task) (*exec.Cmd, error) {
	if r.command == "" {
		return nil, nil
	}

	cmdSlice, err := shellquote.Split(r.command)
	if err != nil {
		return nil, errParseCommand.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), Env(task)...)

	return cmd, nil
}

// Env returns the environment variables describing task.
func Env(task session.Task) []string {
	env := []string{
		"TIMEATTACK_TASK_ID=" + task.ID,
		"TIMEATTACK_SESSION_ID=" + task.SessionID,
		"TIMEATTACK_TASK_TYPE=" + string(task.Type.Kind()),
	}

	if id, ok := task.Type.TicketID(); ok {
		env = append(env, "TIMEATTACK_TICKET_ID="+id)
	}

	if d, ok := task.Type.RestDuration(); ok {
		env = append(env, "TIMEATTACK_REST_SECONDS="+strconv.Itoa(int(d.Seconds())))
	}

	return env
}
