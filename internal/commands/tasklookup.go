package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

var errOutOfRange = errors.New("task number out of range")

// findTask resolves ref against the server. Row numbers index the unfiltered
// list in server order, so the list is refreshed first.
func findTask(ctx context.Context, store *tasklist.Store, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		return store.Get(ctx, ref.ID)
	}

	if err := store.Refresh(ctx); err != nil {
		return service.Task{}, err
	}
	tasks := store.Tasks()
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, ref.Num)
	}
	return tasks[ref.Num-1], nil
}

// lookupTask parses args and resolves the task, printing any error.
// ok is false when the caller should return code.
func lookupTask(ctx context.Context, store *tasklist.Store, args []string, errOut io.Writer) (t service.Task, ref TaskRef, code int, ok bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, ref, exitcode.UserError, false
	}

	t, err = findTask(ctx, store, ref)
	if err != nil {
		if errors.Is(err, errOutOfRange) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.Task{}, ref, exitcode.UserError, false
		}
		return service.Task{}, ref, reportError(errOut, err), false
	}
	return t, ref, exitcode.Success, true
}
