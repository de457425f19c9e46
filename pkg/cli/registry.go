package cli

import (
	"sort"
	"strings"
	"sync"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

const generalGroup = "general"

// groupOrder is the order help lists groups in. Groups not named here follow
// alphabetically, with general last.
var groupOrder = []string{
	contracts.SessionCliGroup,
	contracts.BackofficeGroup,
	contracts.DatabaseCliGroup,
	contracts.SystemCliGroup,
}

type cmdRegistry struct {
	mutex    sync.RWMutex
	commands map[string]contracts.CliCommand
	groups   map[string][]string
}

func NewRegistry() contracts.CliRegistry {
	return &cmdRegistry{
		commands: make(map[string]contracts.CliCommand),
		groups:   make(map[string][]string),
	}
}

func (r *cmdRegistry) Register(command contracts.CliCommand) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if command == nil {
		return ErrCommandRegistration.WithDetail("command", "nil")
	}

	name := command.Name()
	if name == "" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t") {
		return ErrCommandRegistration.WithDetail("command", name).WithDetail("reason", "invalid name")
	}

	if _, exists := r.commands[name]; exists {
		return ErrCommandRegistration.WithDetail("command", name).WithDetail("reason", "already registered")
	}

	r.commands[name] = command

	group := command.Group()
	if group == "" {
		group = generalGroup
	}
	r.groups[group] = append(r.groups[group], name)

	return nil
}

func (r *cmdRegistry) Get(name string) (contracts.CliCommand, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	command, exists := r.commands[name]
	return command, exists
}

// Namespace returns the commands named "<namespace>:<action>", by name.
func (r *cmdRegistry) Namespace(namespace string) []contracts.CliCommand {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	prefix := namespace + ":"
	var result []contracts.CliCommand
	for name, command := range r.commands {
		if strings.HasPrefix(name, prefix) {
			result = append(result, command)
		}
	}
	sortByName(result)
	return result
}

func (r *cmdRegistry) Groups() []contracts.CliGroup {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]contracts.CliGroup, 0, len(r.groups))
	for _, group := range r.orderedGroupNames() {
		names := r.groups[group]
		commands := make([]contracts.CliCommand, 0, len(names))
		for _, name := range names {
			commands = append(commands, r.commands[name])
		}
		sortByName(commands)

		result = append(result, contracts.CliGroup{Name: group, Commands: commands})
	}
	return result
}

func (r *cmdRegistry) orderedGroupNames() []string {
	names := make([]string, 0, len(r.groups))
	for _, group := range groupOrder {
		if _, ok := r.groups[group]; ok {
			names = append(names, group)
		}
	}

	var rest []string
	for group := range r.groups {
		if group != generalGroup && groupRank(group) < 0 {
			rest = append(rest, group)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	if _, ok := r.groups[generalGroup]; ok {
		names = append(names, generalGroup)
	}
	return names
}

func groupRank(group string) int {
	for i, known := range groupOrder {
		if known == group {
			return i
		}
	}
	return -1
}

func sortByName(commands []contracts.CliCommand) {
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
}
