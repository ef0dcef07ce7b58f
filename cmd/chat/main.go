// Command chat is an operator REPL that drives the booking tools directly,
// without the LLM in the loop. Useful for smoke-testing the data files and
// for fixing bookings by hand.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/healthline-ai/hospital-assistant/internal/agent"
	"github.com/healthline-ai/hospital-assistant/internal/booking"
	appconfig "github.com/healthline-ai/hospital-assistant/internal/config"
	"github.com/healthline-ai/hospital-assistant/internal/notify"
	"github.com/healthline-ai/hospital-assistant/internal/reference"
	"github.com/healthline-ai/hospital-assistant/internal/storage"
	"github.com/healthline-ai/hospital-assistant/pkg/logging"
)

const usage = `Commands:
  find <doctor name>                       match schedule rows by doctor name
  specialty <text>                         list doctors by specialty fragment
  slots [doctor=<name>] [specialty=<text>] list bookable slots
  book <doctor>|<date>|<time>|<patient>|<phone>
  phone <number>                           list appointments for a phone number
  get <appointment id>                     look up one appointment
  cancel <appointment id>                  cancel an appointment
  info                                     hospital details
  specialties                              list every specialty
  help                                     show this help
  exit                                     quit`

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.NewText(cfg.LogLevel, os.Stderr)

	store := storage.NewFileStore(cfg.ScheduleFile, cfg.AbsencesFile, cfg.BookingsFile, logger)
	bookings := booking.NewService(store, notify.NewLogSMSSender(logger), logger,
		booking.WithHorizon(cfg.HorizonDays),
		booking.WithDailyCapacity(cfg.DailyCapacity),
	)
	ref := reference.NewStore(cfg.HospitalFile, logger)
	toolset := agent.NewToolset(bookings, store, ref, logger, nil)

	fmt.Println("hospital-assistant operator console")
	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "exit", "quit":
			return
		case "help":
			fmt.Println(usage)
		case "find":
			run(ctx, toolset, agent.ToolFindDoctor, map[string]any{"doctor_name": rest})
		case "specialty":
			run(ctx, toolset, agent.ToolListBySpecialty, map[string]any{"specialty": rest})
		case "slots":
			run(ctx, toolset, agent.ToolAvailableSlots, slotArgs(rest))
		case "book":
			args, err := bookArgs(rest)
			if err != nil {
				fmt.Println(err)
				continue
			}
			run(ctx, toolset, agent.ToolBook, args)
		case "phone":
			run(ctx, toolset, agent.ToolFindByPhone, map[string]any{"patient_phone": rest})
		case "get":
			run(ctx, toolset, agent.ToolGetAppointment, map[string]any{"appointment_id": rest})
		case "cancel":
			run(ctx, toolset, agent.ToolCancel, map[string]any{"appointment_id": rest})
		case "info":
			run(ctx, toolset, agent.ToolHospitalInfo, nil)
		case "specialties":
			run(ctx, toolset, agent.ToolListSpecialties, nil)
		default:
			fmt.Printf("unknown command %q; type 'help'\n", cmd)
		}
	}
}

func run(ctx context.Context, toolset *agent.Toolset, tool string, args map[string]any) {
	result := toolset.Execute(ctx, agent.ToolCall{Name: tool, Args: args})
	out, err := json.MarshalIndent(result.Response, "", "  ")
	if err != nil {
		fmt.Println("failed to render result:", err)
		return
	}
	fmt.Println(string(out))
}

// slotArgs parses "doctor=ali mehdi specialty=cardio" style filters. A bare
// argument with no key is treated as a doctor name.
func slotArgs(rest string) map[string]any {
	args := map[string]any{}
	if rest == "" {
		return args
	}
	lower := strings.ToLower(rest)
	di := strings.Index(lower, "doctor=")
	si := strings.Index(lower, "specialty=")
	switch {
	case di < 0 && si < 0:
		args["doctor_name"] = rest
	default:
		if di >= 0 {
			end := len(rest)
			if si > di {
				end = si
			}
			args["doctor_name"] = strings.TrimSpace(rest[di+len("doctor="):end])
		}
		if si >= 0 {
			end := len(rest)
			if di > si {
				end = di
			}
			args["specialty"] = strings.TrimSpace(rest[si+len("specialty="):end])
		}
	}
	return args
}

func bookArgs(rest string) (map[string]any, error) {
	parts := strings.Split(rest, "|")
	if len(parts) != 5 {
		return nil, fmt.Errorf("book needs 5 fields: doctor|date|time|patient|phone")
	}
	return map[string]any{
		"doctor_name":   strings.TrimSpace(parts[0]),
		"booking_date":  strings.TrimSpace(parts[1]),
		"booking_time":  strings.TrimSpace(parts[2]),
		"patient_name":  strings.TrimSpace(parts[3]),
		"patient_phone": strings.TrimSpace(parts[4]),
	}, nil
}
