// Command shiftdesk is the interactive terminal client for the employee
// self-service backend: schedule viewing and editing, leave requests and
// profile display, gated by the employee/manager role.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/shiftdesk/shiftdesk/internal/api"
	"github.com/shiftdesk/shiftdesk/internal/apperr"
	"github.com/shiftdesk/shiftdesk/internal/config"
	"github.com/shiftdesk/shiftdesk/internal/domain/request"
	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
	"github.com/shiftdesk/shiftdesk/internal/session"
)

type app struct {
	client   *api.Client
	sess     *session.Session
	rec      *schedule.Reconciler
	editor   *schedule.Editor
	requests *request.Workflow
	selected string
	in       *bufio.Reader
	log      *slog.Logger
}

// newLogger writes JSON lines next to the credential store so the log never
// interleaves with the interactive screen. Logging failures are not fatal.
func newLogger(dir, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var out io.Writer = io.Discard
	if f, err := os.OpenFile(filepath.Join(dir, "client.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
		out = f
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("app", "shiftdesk"))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}

	dir := cfg.Client.CredentialDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			fmt.Println("No usable config dir:", err)
			os.Exit(1)
		}
		dir = filepath.Join(base, "shiftdesk")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fmt.Println("Cannot create config dir:", err)
		os.Exit(1)
	}
	log := newLogger(dir, cfg.App.LogLevel)

	sess := session.New(session.NewStore(dir))
	if err := sess.Restore(); err != nil {
		fmt.Println("Failed to restore session:", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.Client.APIBaseURL, api.WithTimeout(cfg.Client.HTTPTimeout))
	today := schedule.Today()
	rec := schedule.NewReconciler(client, sess, schedule.MonthOf(today))

	a := &app{
		client:   client,
		sess:     sess,
		rec:      rec,
		editor:   schedule.NewEditor(client, sess, rec),
		requests: request.NewWorkflow(client, sess),
		selected: today,
		in:       bufio.NewReader(os.Stdin),
		log:      log,
	}
	log.Debug("client starting", slog.String("base_url", cfg.Client.APIBaseURL))

	ctx := context.Background()
	if sess.Token() == "" {
		if err := a.login(ctx); err != nil {
			fmt.Println("Login failed:", err)
			os.Exit(1)
		}
	}

	a.run(ctx)
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) login(ctx context.Context) error {
	email := a.prompt("Email: ")
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if err := a.sess.SignIn(res.AccessToken); err != nil {
		return err
	}
	a.log.Info("signed in", slog.String("email", email), slog.String("role", string(a.sess.Role())))
	return nil
}

func (a *app) run(ctx context.Context) {
	if err := a.rec.Reload(ctx); err != nil {
		fmt.Println("Error:", err)
	}

	for {
		a.renderMonth()
		fmt.Println(strings.Repeat("-", 44))
		fmt.Println("[n]ext [p]rev month  [s]elect day  [e]dit day")
		if a.sess.IsManager() {
			fmt.Println("[v]iew me/dept  [w]orker pick  [r]equests  [g] range fill")
		} else {
			fmt.Println("[r]equests")
		}
		fmt.Println("[o] profile  [q]uit  [logout]")

		switch cmd := a.prompt("> "); cmd {
		case "n", "p":
			a.shiftMonth(ctx, cmd == "n")
		case "s":
			if date := a.prompt("Date (YYYY-MM-DD): "); schedule.ValidDate(date) {
				a.selected = date
			} else {
				fmt.Println("Error:", schedule.ErrInvalidDate)
			}
		case "e":
			a.editDay(ctx)
		case "v":
			a.toggleView(ctx)
		case "w":
			a.pickEmployee(ctx)
		case "g":
			a.rangeFill(ctx)
		case "r":
			a.requestsMenu(ctx)
		case "o":
			a.showProfile(ctx)
		case "logout":
			if err := a.sess.SignOut(); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if err := a.login(ctx); err != nil {
				fmt.Println("Login failed:", err)
				return
			}
			a.rec.InvalidateRoster()
			a.reload(ctx)
		case "q":
			a.rec.Close()
			return
		}
	}
}

func (a *app) reload(ctx context.Context) {
	if err := a.rec.Reload(ctx); err != nil && !apperr.IsCancelled(err) {
		a.log.Warn("reconcile failed", slog.String("month", a.rec.Month()), slog.Any("error", err))
		fmt.Println("Error:", err)
	}
}

func (a *app) shiftMonth(ctx context.Context, forward bool) {
	delta := -1
	if forward {
		delta = 1
	}
	next, err := schedule.AdjacentMonth(a.rec.Month(), delta)
	if err != nil {
		return
	}
	if err := a.rec.SetMonth(next); err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.reload(ctx)
}

func (a *app) toggleView(ctx context.Context) {
	if !a.sess.IsManager() {
		return
	}
	if a.rec.View() == schedule.ViewMe {
		a.rec.SetView(schedule.ViewDept)
	} else {
		a.rec.SetView(schedule.ViewMe)
	}
	a.reload(ctx)
}

func (a *app) pickEmployee(ctx context.Context) {
	roster := a.rec.Roster()
	if len(roster) == 0 {
		fmt.Println("No employees in your department.")
		return
	}
	for i, emp := range roster {
		fmt.Printf("%2d. %s\n", i+1, emp.DisplayName())
	}
	n, err := strconv.Atoi(a.prompt("Pick: "))
	if err != nil || n < 1 || n > len(roster) {
		return
	}
	a.rec.SetSelectedEmployee(roster[n-1].UserID)
	a.reload(ctx)
}

func (a *app) editDay(ctx context.Context) {
	if err := a.editor.Open(a.selected); err != nil {
		fmt.Println("Error:", err)
		return
	}
	for a.editor.State() == schedule.EditorOpen {
		form := a.editor.Form()
		fmt.Printf("Editing %s: type=%s start=%s end=%s title=%q\n",
			a.editor.Date(), form.Type, form.StartTime, form.EndTime, form.Title)
		fmt.Println("[t]ype [b]egin [f]inish [l]abel [s]ave [d]elete [c]ancel")

		switch a.prompt("edit> ") {
		case "t":
			fmt.Println("Types:", strings.Join(schedule.EntryTypeValues, " "))
			form.Type = schedule.EntryType(a.prompt("Type: "))
			a.editor.SetForm(form)
		case "b":
			form.StartTime = a.prompt("Start (HH:MM): ")
			a.editor.SetForm(form)
		case "f":
			form.EndTime = a.prompt("End (HH:MM): ")
			a.editor.SetForm(form)
		case "l":
			form.Title = a.prompt("Title: ")
			a.editor.SetForm(form)
		case "s":
			if err := a.editor.Save(ctx); err != nil {
				fmt.Println("Error:", err)
			}
		case "d":
			if err := a.editor.Delete(ctx); err != nil {
				fmt.Println("Error:", err)
			}
		case "c":
			a.editor.Cancel()
		}
	}
}

func (a *app) rangeFill(ctx context.Context) {
	target, ok := a.rec.Subject()
	if !ok || target.IsSelf() {
		fmt.Println("Pick a department employee first.")
		return
	}
	payload := schedule.RangeUpsert{
		StartDate: a.prompt("Start date (YYYY-MM-DD): "),
		EndDate:   a.prompt("End date (YYYY-MM-DD): "),
		Type:      schedule.EntryType(a.prompt("Type: ")),
		Overwrite: a.prompt("Overwrite existing days? (y/N): ") == "y",
	}
	if payload.Type.NeedsTimes() {
		start := a.prompt("Start (HH:MM): ")
		end := a.prompt("End (HH:MM): ")
		payload.StartTime = &start
		payload.EndTime = &end
	}
	if err := payload.Validate(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	result, err := a.client.UpsertRange(ctx, a.sess.Token(), payload, *target.EmployeeID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Created %d, updated %d, skipped %d\n", result.Created, result.Updated, result.Skipped)
	a.reload(ctx)
}

func (a *app) requestsMenu(ctx context.Context) {
	list, err := a.requests.List(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(list) == 0 {
		fmt.Println("No requests.")
	}
	for _, req := range list {
		who := ""
		if req.UserFullName != nil {
			who = " " + *req.UserFullName
		} else if req.UserEmail != nil {
			who = " " + *req.UserEmail
		}
		fmt.Printf("#%d%s %s %s..%s [%s]\n", req.ID, who, req.Type, req.StartDate, req.EndDate, req.Status)
	}

	if a.sess.IsManager() {
		fmt.Println("[a <id>] approve  [x <id>] reject  [enter] back")
		fields := strings.Fields(a.prompt("req> "))
		if len(fields) != 2 {
			return
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return
		}
		to := request.StatusApproved
		if fields[0] == "x" {
			to = request.StatusRejected
		} else if fields[0] != "a" {
			return
		}
		for _, req := range list {
			if req.ID == id {
				if _, err := a.requests.Decide(ctx, req, to); err != nil {
					fmt.Println("Error:", err)
				}
				return
			}
		}
		fmt.Println("Error:", request.ErrRequestNotFound)
		return
	}

	fmt.Println("[c] create request  [enter] back")
	if a.prompt("req> ") != "c" {
		return
	}
	payload := request.CreateServiceRequestRequest{
		Type:      request.RequestType(a.prompt("Type (off/vacation/sick): ")),
		StartDate: a.prompt("Start date (YYYY-MM-DD): "),
		EndDate:   a.prompt("End date (YYYY-MM-DD): "),
	}
	if _, err := a.requests.Create(ctx, payload); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Request submitted.")
}

func (a *app) showProfile(ctx context.Context) {
	p, err := a.client.MyProfile(ctx, a.sess.Token())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	show := func(label string, v *string) {
		if v != nil && *v != "" {
			fmt.Printf("%-16s %s\n", label, *v)
		}
	}
	fmt.Printf("%-16s %s\n", "Email", p.Email)
	show("Name", p.FullName)
	show("Number", p.EmployeeNumber)
	show("Position", p.Position)
	show("Department", p.DepartmentName)
	show("Born", p.BirthDate)
	show("Working since", p.WorkStartDate)
}
