package filters

import (
	"context"
	"strings"

	"github.com/tgrouter/tgrouter/pkg/domain"
)

// CommandConfig controls how the command filter parses messages.
type CommandConfig struct {
	// Names lists the commands to match, without prefix. Empty means
	// any command.
	Names []string

	// Prefixes holds the accepted prefix characters. Defaults to "/".
	Prefixes string

	// CaseSensitive disables the default case folding of command names.
	CaseSensitive bool

	// BotUsername, when set, restricts targeted commands like
	// "/start@mybot" to this bot. When empty any "@suffix" is accepted
	// and stripped.
	BotUsername string
}

// Command matches bot commands with default settings: "/" prefix,
// case-insensitive. On match it records the command name and its
// arguments on the event.
func Command(names ...string) Filter {
	return CommandWithConfig(CommandConfig{Names: names})
}

// CommandWithConfig is Command with explicit parsing settings.
func CommandWithConfig(cfg CommandConfig) Filter {
	if cfg.Prefixes == "" {
		cfg.Prefixes = "/"
	}

	names := make(map[string]struct{}, len(cfg.Names))
	for _, name := range cfg.Names {
		if !cfg.CaseSensitive {
			name = strings.ToLower(name)
		}
		names[name] = struct{}{}
	}

	botUsername := strings.ToLower(strings.TrimPrefix(cfg.BotUsername, "@"))

	name := "command"
	if len(cfg.Names) > 0 {
		name = "command(" + strings.Join(cfg.Names, ", ") + ")"
	}

	return New(name, func(_ context.Context, e *domain.Event) (bool, error) {
		text := e.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return false, nil
		}

		head := fields[0]
		if !strings.ContainsRune(cfg.Prefixes, rune(head[0])) {
			return false, nil
		}
		cmd := head[1:]

		// Commands in groups may be targeted: /start@mybot.
		if cmd, ok := splitTarget(cmd, botUsername); ok {
			if !cfg.CaseSensitive {
				cmd = strings.ToLower(cmd)
			}
			if cmd == "" {
				return false, nil
			}
			if len(names) > 0 {
				if _, ok := names[cmd]; !ok {
					return false, nil
				}
			}

			e.Command = cmd
			e.Args = fields[1:]
			return true, nil
		}
		return false, nil
	})
}

// splitTarget strips an "@username" suffix from cmd. It reports false
// when the command targets a different bot.
func splitTarget(cmd, botUsername string) (string, bool) {
	cmd, target, found := strings.Cut(cmd, "@")
	if !found || target == "" {
		return cmd, true
	}
	if botUsername != "" && !strings.EqualFold(target, botUsername) {
		return "", false
	}
	return cmd, true
}
