package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"taskpad/internal/model"
	"taskpad/internal/view"
)

func newAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			t, ok := ts.Add(args[0], description)
			if !ok {
				return writeErr(cmd, errors.New("a task needs a non-blank title"))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Markdown description")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := model.ParseFilter(filter)
			if !ok {
				return writeErr(cmd, errors.New("unknown filter: "+filter+" (want all|active|completed)"))
			}

			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			return writeOut(cmd, app, map[string]any{"data": view.Visible(ts.Tasks(), f)})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Filter (all|active|completed)")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			id := args[0]
			if _, ok := ts.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			ts.ToggleComplete(id)
			t, _ := ts.Find(id)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			// Deleting an unknown id is a no-op, not a failure.
			id := args[0]
			_, existed := ts.Find(id)
			ts.Delete(id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": existed}})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task's title and/or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p model.TaskPatch
			if cmd.Flags().Changed("title") {
				p.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				p.Description = &description
			}
			if p.Title == nil && p.Description == nil {
				return writeErr(cmd, errors.New("nothing to change; pass --title and/or --desc"))
			}

			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			id := args[0]
			if _, ok := ts.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			changed := ts.Edit(id, p)
			t, _ := ts.Find(id)
			return writeOut(cmd, app, map[string]any{"data": t, "meta": map[string]any{"changed": changed}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New Markdown description")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <position>",
		Short: "Move a task to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return writeErr(cmd, errors.New("position must be a 1-based integer"))
			}

			ts, _, closeKV, err := loadTaskStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			id := args[0]
			if _, ok := ts.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}

			ts.Reorder(moveToPosition(ts.Tasks(), id, pos))
			return writeOut(cmd, app, map[string]any{"data": ts.Tasks()})
		},
	}
}

// moveToPosition maps the collection to an id sequence with the given task at
// the 1-based position, clamped to the end.
func moveToPosition(tasks []model.Task, id string, pos int) []string {
	rest := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			rest = append(rest, t.ID)
		}
	}
	i := pos - 1
	if i > len(rest) {
		i = len(rest)
	}
	out := make([]string, 0, len(tasks))
	out = append(out, rest[:i]...)
	out = append(out, id)
	out = append(out, rest[i:]...)
	return out
}
