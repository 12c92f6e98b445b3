package bot

import (
	"fmt"

	"logia/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func brotherOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         "hermano",
		Description:  "Nombre o cédula del hermano",
		Required:     required,
		Autocomplete: true,
	}
}

func meetingOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         "tenida",
		Description:  "Tema o fecha de la tenida",
		Required:     true,
		Autocomplete: true,
	}
}

func positionOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         "cargo",
		Description:  "Cargo de la logia",
		Required:     true,
		Autocomplete: true,
	}
}

func templeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         "templo",
		Description:  "Templo registrado donde se celebra",
		Autocomplete: true,
	}
}

func gradeOption(name, description string, required, includeAll bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
		Choices:     common.GradeChoices(includeAll),
	}
}

func meetingTypeOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tipo",
		Description: "Tipo de tenida",
		Required:    required,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Ordinaria", Value: "Ordinaria"},
			{Name: "Extraordinaria", Value: "Extraordinaria"},
			{Name: "Conjunta", Value: "Conjunta"},
		},
	}
}

func meetingFieldOptions(required bool) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tema",
			Description: "Tema de la tenida",
			Required:    required,
			MaxLength:   200,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "fecha",
			Description: "Fecha (AAAA-MM-DD o DD/MM/AAAA)",
			Required:    required,
		},
		meetingTypeOption(required),
		gradeOption("grado", "Grado de la tenida", required, false),
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "lugar",
			Description: "Lugar de la tenida (texto libre)",
		},
		templeOption(),
	}
}

func commandList() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "asistencias",
			Description: "Reporte de asistencia de los hermanos",
			Options: []*discordgo.ApplicationCommandOption{
				gradeOption("grado", "Filtrar por grado", false, true),
			},
		},
		{
			Name:        "asistencia",
			Description: "Registrar y consultar asistencias",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "registrar",
					Description: "Marcar a un hermano como presente en una tenida",
					Options:     []*discordgo.ApplicationCommandOption{meetingOption(), brotherOption(true)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "quitar",
					Description: "Quitar la asistencia de un hermano",
					Options:     []*discordgo.ApplicationCommandOption{meetingOption(), brotherOption(true)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lista",
					Description: "Ver los asistentes de una tenida",
					Options:     []*discordgo.ApplicationCommandOption{meetingOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "hermano",
					Description: "Ver la asistencia de un hermano",
					Options:     []*discordgo.ApplicationCommandOption{brotherOption(true)},
				},
			},
		},
		{
			Name:        "hermanos",
			Description: "Gestionar a los hermanos de la logia",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "listar",
					Description: "Listar hermanos",
					Options: []*discordgo.ApplicationCommandOption{
						gradeOption("grado", "Filtrar por grado", false, true),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "buscar",
							Description: "Buscar por nombre o cargo",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "grados",
					Description: "Distribución de hermanos por grado",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "editar",
					Description: "Cambiar el grado o el cargo de un hermano",
					Options: []*discordgo.ApplicationCommandOption{
						brotherOption(true),
						gradeOption("grado", "Nuevo grado", true, false),
						{
							Type:         discordgo.ApplicationCommandOptionInteger,
							Name:         "cargo",
							Description:  "Nuevo cargo",
							Autocomplete: true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "sin_cargo",
							Description: "Dejar al hermano sin cargo",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "importar",
					Description: "Importar hermanos desde un archivo CSV o Excel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionAttachment,
							Name:        "archivo",
							Description: "Archivo .csv o .xlsx con columnas nombre, cedula, grado y cargo",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "tenidas",
			Description: "Gestionar las tenidas de la logia",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "listar",
					Description: "Listar las tenidas, las más recientes primero",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "proximas",
					Description: "Ver las próximas tenidas",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "cantidad",
							Description: "Cuántas tenidas mostrar",
							MinValue:    floatPtr(1),
							MaxValue:    float64(common.MaxEmbedFields),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "ver",
					Description: "Ver el detalle de una tenida",
					Options:     []*discordgo.ApplicationCommandOption{meetingOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "crear",
					Description: "Programar una tenida",
					Options:     meetingFieldOptions(true),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "editar",
					Description: "Editar una tenida",
					Options:     append([]*discordgo.ApplicationCommandOption{meetingOption()}, meetingFieldOptions(false)...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "templos",
					Description: "Listar los templos registrados",
				},
			},
		},
		{
			Name:        "convocatoria",
			Description: "Generar la convocatoria en PDF de una tenida",
			Options:     []*discordgo.ApplicationCommandOption{meetingOption()},
		},
		{
			Name:        "cuadro",
			Description: "Ver el cuadro logial",
		},
		{
			Name:        "cargo",
			Description: "Gestionar los cargos de la logia",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "asignar",
					Description: "Asignar un cargo a un hermano, o dejarlo vacante",
					Options:     []*discordgo.ApplicationCommandOption{positionOption(), brotherOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "historial",
					Description: "Ver quiénes han ocupado un cargo",
					Options:     []*discordgo.ApplicationCommandOption{positionOption()},
				},
			},
		},
		{
			Name:        "resumen",
			Description: "Resumen general de la logia",
		},
		{
			Name:        "buscar",
			Description: "Buscar hermanos y tenidas",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "texto",
					Description: "Nombre, cédula o tema",
					Required:    true,
				},
			},
		},
		{
			Name:        "exportar",
			Description: "Exportar un reporte en PDF o Excel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reporte",
					Description: "Reporte a exportar",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Asistencias", Value: "asistencias"},
						{Name: "Hermanos", Value: "hermanos"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "formato",
					Description: "Formato del archivo",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "PDF", Value: "pdf"},
						{Name: "Excel", Value: "xlsx"},
					},
				},
				gradeOption("grado", "Filtrar por grado", false, true),
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := commandList()

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}

	log.WithFields(log.Fields{
		"count":    len(registered),
		"guild_id": b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}

func floatPtr(f float64) *float64 {
	return &f
}
