package common

import (
	"logia/models"

	"github.com/bwmarrin/discordgo"
)

// Options indexes command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// NewOptions indexes a list of command options
func NewOptions(options []*discordgo.ApplicationCommandInteractionDataOption) Options {
	indexed := make(Options, len(options))
	for _, opt := range options {
		indexed[opt.Name] = opt
	}
	return indexed
}

// String returns a string option or ""
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Int returns an integer option and whether it was given
func (o Options) Int(name string) (int64, bool) {
	if opt, ok := o[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

// Bool returns a boolean option or false
func (o Options) Bool(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// Grade parses an optional grade filter option; "" or "todos" mean all grades
func (o Options) Grade(name string) (*models.Grade, error) {
	return models.ParseGradeFilter(o.String(name))
}

// Focused returns the option being typed in an autocomplete interaction
func Focused(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Focused {
			return opt
		}
		if focused := Focused(opt.Options); focused != nil {
			return focused
		}
	}
	return nil
}

// SubCommand returns the first option when it is a subcommand, or nil
func SubCommand(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	if len(options) > 0 && options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return options[0]
	}
	return nil
}

// GradeChoices lists the grades as command choices
func GradeChoices(includeAll bool) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.AllGrades)+1)
	if includeAll {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: "Todos", Value: "todos"})
	}
	for _, grade := range models.AllGrades {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(grade), Value: string(grade)})
	}
	return choices
}
