package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/muurk/impromptu/internal/engine"
	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// minNameLength is the shortest name the demo accepts
const minNameLength = 3

var demoTopics = []string{"Food", "Colors", "Cities", "Other"}

const sponsorMessage = "Impromptu forms are plain YAML files. Each question picks a widget, " +
	"and jumps decide what comes next from the answer just given: insert a few " +
	"follow-ups, branch into a detour and merge back, or skip ahead. Run " +
	"'impromptu validate' on a file to catch typos before anyone sees the form."

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a short built-in form",
	Long: `Run a short form that shows each widget.

The name is masked and must be at least three characters long; a shorter
answer shows an error that Esc dismisses. The topic you pick inserts a
matching follow-up question.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		defaults, err := settings.ThemeSettings()
		if err != nil {
			return fmt.Errorf("config theme: %w", err)
		}
		return ask(cmd, "Demo", func(e *engine.Engine) error {
			for _, f := range demoFields() {
				e.Register(f.Setup(defaults...))
			}
			return nil
		})
	},
}

// demoFields returns the questions of the demo form in order
func demoFields() []*field.Field {
	name := field.NewSecret("name", "What is your name?").
		Setup(theme.Set(theme.KeyRefresh, theme.Bool(true))).
		OnUpdate("enter", checkName).
		OnUpdate("esc", checkName)

	topic := field.NewChoice("favorite", "Pick a topic:", demoTopics, 6).
		OnUnmount(insertFollowUp)

	msg := field.NewStatic("msg", "A word from our sponsor:", sponsorMessage)

	return []*field.Field{name, topic, msg}
}

// followUp builds the question asked after a topic is picked
func followUp(topic string) *field.Field {
	switch topic {
	case "Food":
		return field.NewMulti("favorite_food", "What are your favorite foods?",
			[]string{"Pizza", "Steak", "Spaghetti", "Fried Chicken", "Kale", "Burgers", "Lobster", "Ice Cream"}, 0).
			Setup(theme.Set(theme.KeyLinespace, theme.Integer(6)))
	case "Colors":
		return field.NewMulti("favorite_color", "What are your favorite colors?",
			[]string{"Blue", "Red", "Green", "Purple", "Orange", "Yellow", "Pink", "Brown"}, 0)
	case "Cities":
		return field.NewMulti("favorite_cities", "What are your favorite cities?",
			[]string{"NYC", "LA"}, 0)
	default:
		return field.NewText("favorite_other", "What other thing is your favorite?")
	}
}

func insertFollowUp(f *field.Field) (bool, error) {
	return true, f.Registrar().Insert(followUp(f.Result().Value))
}

// checkName rejects short names on either confirm key. Keys go to the handler while the error is
// on screen; Esc dismisses it and hands them back to the editor.
func checkName(u *field.Update) error {
	if utf8.RuneCountInString(u.Field().Value().Value) >= minNameLength {
		return nil
	}
	u.Reopen()

	msg := fmt.Sprintf("Error: a name needs at least %d characters (esc to dismiss)", minNameLength)
	alert := theme.Pair(terminal.ColorRed, terminal.ColorDefault)
	u.Draw(func(s terminal.Surface) {
		w, h := s.Size()
		theme.Uniform(strings.Repeat("_", w), alert).Draw(s, 0, h-3)
		theme.Uniform(msg, alert).Draw(s, 0, h-2)
	})

	for {
		ev, err := u.Next()
		if err != nil {
			return err
		}
		if ev.Type == terminal.EventKey && ev.Key == terminal.KeyEsc {
			break
		}
	}

	u.Release()
	u.Draw(func(s terminal.Surface) {
		w, h := s.Size()
		blank := theme.Uniform(strings.Repeat(" ", w), theme.Plain)
		for y := h - 3; y < h-1; y++ {
			blank.Draw(s, 0, y)
		}
	})
	return nil
}
