// main is the interactive registry console — the "page" that wires the
// interaction controller, renderer, toast surface, and the standalone
// demo widgets (calculator, to-do list, countdown timer) together.
//
// RUNNING THE CONSOLE (with the server already up):
//
//	go run ./cmd/registry-cli --config=config/local.yaml
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/controller"
	"github.com/aanand-mishra/student-registry/internal/gateway"
	"github.com/aanand-mishra/student-registry/internal/notify"
	"github.com/aanand-mishra/student-registry/internal/syncer"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/view"
	"github.com/aanand-mishra/student-registry/internal/widget"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	gw := gateway.New(cfg.Client.ServerURL, cfg.Client.RequestTimeout)
	sync := syncer.New(gw, log)

	toaster := notify.New(cfg.Client.NotificationTTL)
	toaster.OnShow = func(m notify.Message) {
		tag := "OK"
		if m.Kind == notify.Failure {
			tag = "ERROR"
		}
		fmt.Printf("[%s] %s\n", tag, m.Text)
	}

	console := &console{in: bufio.NewScanner(os.Stdin)}
	ctrl := controller.New(sync, gw, console, toaster, console, log)

	tasks, err := widget.NewTodoList(cfg.Client.TasksPath)
	if err != nil {
		log.Error("failed to load tasks", slog.String("error", err.Error()))
		os.Exit(1)
	}
	timer := widget.NewCountdown()
	defer timer.Stop()

	ctx := context.Background()

	fmt.Printf("student registry console — server %s (type 'help')\n", cfg.Client.ServerURL)
	ctrl.Refresh(ctx)

	for {
		fmt.Print("> ")
		if !console.in.Scan() {
			return
		}
		line := strings.TrimSpace(console.in.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "list":
			ctrl.Refresh(ctx)
		case "add":
			ctrl.SubmitCreate(ctx, parseDraft(rest))
		case "edit":
			id, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
			if err != nil {
				fmt.Println("usage: edit <id>")
				continue
			}
			if s, ok := ctrl.OpenEdit(id); ok {
				school := ""
				if s.School != nil {
					school = *s.School
				}
				fmt.Printf("editing #%d: %s;%d;%s;%s;%s\n",
					s.ID, s.Name, s.Age, school, s.College, s.Course)
				fmt.Println("enter: save <name>;<age>;<school>;<college>;<course>")
			}
		case "save":
			ctrl.SaveEdit(ctx, parseDraft(rest))
		case "delete":
			id, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
			if err != nil {
				fmt.Println("usage: delete <id>")
				continue
			}
			ctrl.Delete(ctx, id)
		case "todo":
			runTodo(tasks, rest)
		case "calc":
			runCalc(rest)
		case "sqrt":
			x, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				fmt.Println("usage: sqrt <number>")
				continue
			}
			if r, err := widget.SquareRoot(x); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Square Root:", widget.FormatResult(r))
			}
		case "timer":
			runTimer(timer, rest)
		default:
			fmt.Printf("unknown command %q (type 'help')\n", cmd)
		}
	}
}

// console implements the controller's UI and Confirmer over stdin/stdout.
type console struct {
	in *bufio.Scanner
}

func (c *console) Render(rows []view.Row) {
	fmt.Println("ID    NAME                 AGE  SCHOOL           COLLEGE          COURSE")
	for _, r := range rows {
		if r.Placeholder {
			fmt.Println(r.Name)
			continue
		}
		fmt.Printf("%-5d %-20s %-4s %-16s %-16s %s\n",
			r.ID, r.Name, r.Age, r.School, r.College, r.Course)
	}
}

func (c *console) ResetCreateForm() {}

func (c *console) CloseEditForm() {}

func (c *console) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

// parseDraft parses "<name>;<age>;<school>;<college>;<course>". School
// may be empty. Anything malformed is left for the synchronizer's
// validation to reject with a field-level message.
func parseDraft(s string) types.StudentDraft {
	parts := strings.Split(s, ";")
	for len(parts) < 5 {
		parts = append(parts, "")
	}

	age, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	var school *string
	if strings.TrimSpace(parts[2]) != "" {
		school = types.Ptr(parts[2])
	}

	return types.StudentDraft{
		Name:    parts[0],
		Age:     age,
		School:  school,
		College: parts[3],
		Course:  parts[4],
	}
}

func runTodo(tasks *widget.TodoList, rest string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(rest), " ")
	var err error
	switch cmd {
	case "add":
		err = tasks.Add(arg)
	case "list", "":
		for i, t := range tasks.Filtered(arg) {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Printf("%3d [%s] %s\n", i, mark, t.Text)
		}
		total, completed := tasks.Counter()
		fmt.Printf("Tasks: %d (Completed: %d)\n", total, completed)
		return
	case "toggle":
		var i int
		if i, err = strconv.Atoi(arg); err == nil {
			_, err = tasks.Toggle(i)
		}
	case "rm":
		var i int
		if i, err = strconv.Atoi(arg); err == nil {
			err = tasks.Remove(i)
		}
	case "clear":
		err = tasks.ClearAll()
	case "clear-done":
		err = tasks.ClearCompleted()
	default:
		fmt.Println("usage: todo add|list|toggle|rm|clear|clear-done")
		return
	}
	if err != nil {
		fmt.Println(err)
	}
}

func runCalc(rest string) {
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		fmt.Println("usage: calc <a> <add|subtract|multiply|divide> <b>")
		return
	}
	a, err1 := strconv.ParseFloat(fields[0], 64)
	b, err2 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil {
		fmt.Println("Please enter valid numbers.")
		return
	}
	result, err := widget.Calculate(widget.Operation(fields[1]), a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Result:", widget.FormatResult(result))
}

func runTimer(timer *widget.Countdown, rest string) {
	rest = strings.TrimSpace(rest)
	if rest == "stop" {
		timer.Stop()
		fmt.Println("Timer stopped")
		return
	}
	seconds, err := strconv.Atoi(rest)
	if err != nil {
		fmt.Println("usage: timer <seconds> | timer stop")
		return
	}
	err = timer.Start(seconds,
		func(remaining int, percent float64) {
			fmt.Printf("Time left: %ds (%.0f%%)\n", remaining, percent)
		},
		func() { fmt.Println("Timer finished!") },
	)
	if err != nil {
		fmt.Println(err)
	}
}

func printHelp() {
	fmt.Println(`commands:
  list                                         reload and show all students
  add <name>;<age>;<school>;<college>;<course> add a student (school optional)
  edit <id>                                    open an edit session
  save <name>;<age>;<school>;<college>;<course> save the open edit session
  delete <id>                                  delete (asks for confirmation)
  todo add|list|toggle|rm|clear|clear-done     to-do widget
  calc <a> <op> <b>   sqrt <x>                 calculator widget
  timer <seconds> | timer stop                 countdown widget
  quit`)
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == "prod" {
		level = slog.LevelInfo
	}
	// Logs go to stderr so they never interleave with the rendered table.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
