package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"auction-client/internal/models"
	"auction-client/internal/navigation"
	"auction-client/utils"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("invalid usage")

type command struct {
	name  string
	usage string
	run   func(a *app, ctx context.Context, args []string) error
	// mutates marks commands that send the anti-forgery header
	mutates bool
}

var commands = []command{
	{"whoami", "whoami", (*app).whoami, false},
	{"items", "items", (*app).listItems, false},
	{"search", "search <query>", (*app).search, false},
	{"mine", "mine", (*app).mine, false},
	{"show", "show <id>", (*app).show, false},
	{"create", "create --title T --description D --price P --ends YYYY-MM-DDTHH:MM [--image path]", (*app).create, true},
	{"delete", "delete <id>", (*app).deleteItem, true},
	{"bid", "bid <id> <amount>", (*app).bid, true},
	{"ask", "ask <id> <text>", (*app).ask, true},
	{"answer", "answer <item-id> <question-id> <text>", (*app).answer, true},
	{"profile", "profile [--email E] [--dob YYYY-MM-DD] [--image path]", (*app).profile, true},
	{"logout", "logout", (*app).logout, false},
}

func commandUsage() string {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %s\n", cmd.usage)
	}
	return b.String()
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	for _, cmd := range commands {
		if cmd.name == name {
			utils.Debug("running command", map[string]any{"command": name, "args": len(args)})
			if cmd.mutates && a.client.CSRFToken() == "" {
				if err := a.client.PrimeCSRF(ctx); err != nil {
					return fmt.Errorf("fetch anti-forgery token: %w", err)
				}
			}
			return cmd.run(a, ctx, args)
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, name)
}

// navigate passes path through the auth guard
func (a *app) navigate(ctx context.Context, path string) error {
	_, err := a.router.Navigate(ctx, path)
	if errors.Is(err, navigation.ErrRedirected) {
		location, _ := a.history.Last()
		return fmt.Errorf("not signed in, log in at %s: %w", location, err)
	}
	if err != nil {
		return err
	}
	utils.Debug("navigated", map[string]any{"path": path, "title": a.router.Title()})
	return nil
}

// itemsError surfaces the error a read action recorded on the items store
func (a *app) itemsError() error {
	if msg := a.items.State().Error; msg != "" {
		return errors.New(msg)
	}
	return nil
}

func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	if err := a.navigate(ctx, "/profile"); err != nil {
		return err
	}
	return a.print(a.users.State().User)
}

func (a *app) listItems(ctx context.Context, _ []string) error {
	if err := a.navigate(ctx, "/"); err != nil {
		return err
	}
	a.items.FetchItems(ctx)
	if err := a.itemsError(); err != nil {
		return err
	}
	return a.print(a.items.State().Items)
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: search <query>", errUsage)
	}
	if err := a.navigate(ctx, "/"); err != nil {
		return err
	}
	a.items.SearchItems(ctx, strings.Join(args, " "))
	if err := a.itemsError(); err != nil {
		return err
	}
	return a.print(a.items.State().SearchResults)
}

func (a *app) mine(ctx context.Context, _ []string) error {
	if err := a.navigate(ctx, "/my-auctions"); err != nil {
		return err
	}
	a.items.FetchMyItems(ctx)
	if err := a.itemsError(); err != nil {
		return err
	}
	return a.print(a.items.State().MyItems)
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <id>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.navigate(ctx, itemRoute(id)); err != nil {
		return err
	}
	a.items.FetchItem(ctx, id)
	if err := a.itemsError(); err != nil {
		return err
	}
	return a.print(a.items.State().CurrentItem)
}

func (a *app) create(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
	title := flags.String("title", "", "listing title")
	description := flags.String("description", "", "listing description")
	price := flags.String("price", "", "starting price")
	ends := flags.String("ends", "", "auction end, e.g. 2030-01-31T18:00")
	image := flags.String("image", "", "path to an image file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	form := models.CreateItemForm{
		Title:         *title,
		Description:   *description,
		StartingPrice: *price,
		EndDatetime:   *ends,
	}
	if *image != "" {
		upload, err := readUpload(*image)
		if err != nil {
			return err
		}
		form.Image = upload
	}

	if err := a.navigate(ctx, "/create-item"); err != nil {
		return err
	}
	item, err := a.items.CreateItem(ctx, form)
	if err != nil {
		return err
	}
	return a.print(item)
}

func (a *app) deleteItem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.navigate(ctx, "/my-auctions"); err != nil {
		return err
	}
	if err := a.items.DeleteItem(ctx, id); err != nil {
		return err
	}
	return a.print(models.DeleteResponse{Success: true})
}

func (a *app) bid(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: bid <id> <amount>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("%w: amount %q must be a positive number", errUsage, args[1])
	}

	if err := a.navigate(ctx, itemRoute(id)); err != nil {
		return err
	}
	bid, err := a.items.PlaceBid(ctx, id, models.PlaceBidForm{Amount: amount.StringFixed(2)})
	if err != nil {
		return err
	}
	return a.print(bid)
}

func (a *app) ask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: ask <id> <text>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.navigate(ctx, itemRoute(id)); err != nil {
		return err
	}
	question, err := a.items.AskQuestion(ctx, id, models.QuestionForm{Text: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	return a.print(question)
}

func (a *app) answer(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: answer <item-id> <question-id> <text>", errUsage)
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	questionID, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := a.navigate(ctx, itemRoute(itemID)); err != nil {
		return err
	}

	// load the item so the answer refreshes it
	a.items.FetchItem(ctx, itemID)
	if err := a.itemsError(); err != nil {
		return err
	}
	answer, err := a.items.AnswerQuestion(ctx, questionID, models.QuestionForm{Text: strings.Join(args[2:], " ")})
	if err != nil {
		return err
	}
	return a.print(answer)
}

func (a *app) profile(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("profile", pflag.ContinueOnError)
	email := flags.String("email", "", "new email address")
	dob := flags.String("dob", "", "date of birth, YYYY-MM-DD")
	image := flags.String("image", "", "path to a profile image")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.navigate(ctx, "/profile"); err != nil {
		return err
	}

	if flags.NFlag() > 0 {
		form := models.UpdateProfileForm{Email: *email, DateOfBirth: *dob}
		if *image != "" {
			upload, err := readUpload(*image)
			if err != nil {
				return err
			}
			form.ProfileImage = upload
		}
		if err := a.users.UpdateProfile(ctx, form); err != nil {
			return err
		}
	}
	return a.print(a.users.State().User)
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := a.navigate(ctx, "/"); err != nil {
		return err
	}
	a.users.Logout()
	location, _ := a.history.Last()
	return a.print(map[string]string{"redirect": location})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", errUsage, raw)
	}
	return id, nil
}

func itemRoute(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

func readUpload(path string) (*models.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &models.Upload{Filename: filepath.Base(path), Content: content}, nil
}
