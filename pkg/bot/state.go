package bot

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
)

// Options configures a State.
type Options struct {
	Logger *log.Logger
}

// State is the process-wide registry of loaded modules, commands and
// triggers. It is safe for concurrent use: loads are serialized behind the
// write lock and lookups share the read lock. Lookups return snapshots, so
// callers never hold a lock while running handlers.
type State struct {
	modules  map[string]*Module
	commands map[string]*BotCommand
	triggers map[Priority][]*Trigger

	logger *log.Logger
	mutex  sync.RWMutex
}

// NewState creates an empty registry.
func NewState(opts Options) *State {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}

	return &State{
		modules:  make(map[string]*Module),
		commands: make(map[string]*BotCommand),
		triggers: make(map[Priority][]*Trigger),
		logger:   opts.Logger.WithField("component", "module-registry"),
	}
}

// LoadModules loads each module independently. A failing module never stops
// the others; the failures of all modules are returned as one LoadErrors.
func (s *State) LoadModules(modules []*Module, mode LoadMode) error {
	var errs LoadErrors
	for _, module := range modules {
		if err := s.LoadModule(module, mode); err != nil {
			if loadErrs, ok := err.(LoadErrors); ok {
				errs = append(errs, loadErrs...)
			} else {
				errs = append(errs, err)
			}
		}
	}
	return errs.errOrNil()
}

// LoadModule merges module into the registry according to mode.
//
// A module name clash aborts the load before anything changes. Otherwise the
// module is registered and each of its features is loaded in declaration
// order; every feature clash is collected and returned as LoadErrors. The
// module and its non-clashing features stay registered when some features
// clash.
func (s *State) LoadModule(module *Module, mode LoadMode) error {
	if module == nil {
		return LoadErrors{mdwerror.New("cannot load a nil module").WithCode(mdwerror.CodeInvalidInput)}
	}
	if !mode.Valid() {
		return LoadErrors{mdwerror.Newf("unknown load mode %d", int(mode)).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("module", module.name)}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.logger.Debug("Loading module", log.Fields{
		"module":   module.name,
		"mode":     mode,
		"features": featureInfos(module.features),
	})

	if existing, ok := s.modules[module.name]; ok && mode == LoadAdd {
		err := &ModuleRegistryClashError{Existing: existing.Info(), Incoming: module.Info()}
		s.logger.Warn("Module registry clash", log.Fields{
			"module": module.name,
			"mode":   mode,
		})
		return LoadErrors{err}
	}

	s.modules[module.name] = module

	var errs LoadErrors
	for _, feature := range module.features {
		if err := s.loadFeature(module, feature, mode); err != nil {
			s.logger.Warn("Module feature registry clash", log.Fields{
				"module":  module.name,
				"feature": feature.Info(),
				"error":   err,
			})
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		s.logger.Info("Module loaded", log.Fields{
			"module":   module.name,
			"mode":     mode,
			"features": len(module.features),
		})
	}

	return errs.errOrNil()
}

func (s *State) loadFeature(provider *Module, feature Feature, mode LoadMode) error {
	s.logger.Trace("Checking module feature", log.Fields{"feature": feature.Info()})

	switch f := feature.(type) {
	case *CommandFeature:
		if old, ok := s.commands[f.name]; ok {
			clash := false
			switch mode {
			case LoadAdd:
				clash = true
			case LoadReplace:
				clash = old.provider.name != provider.name
			case LoadForce:
			default:
				clash = true
			}
			if clash {
				return &FeatureRegistryClashError{
					Existing:         old.Info(),
					Incoming:         f.Info(),
					ExistingProvider: old.provider.Info(),
					IncomingProvider: provider.Info(),
				}
			}
		}
	case *TriggerFeature:
		// Triggers are cumulative and never clash.
	}

	s.forceLoadFeature(provider, feature)
	return nil
}

func (s *State) forceLoadFeature(provider *Module, feature Feature) {
	s.logger.Trace("Registering module feature", log.Fields{"feature": feature.Info()})

	switch f := feature.(type) {
	case *CommandFeature:
		s.commands[f.name] = &BotCommand{
			provider:   provider,
			name:       f.name,
			auth:       f.auth,
			handler:    f.handler,
			syntaxText: f.syntaxText,
			syntax:     f.syntax,
			help:       f.help,
		}
	case *TriggerFeature:
		s.triggers[f.priority] = append(s.triggers[f.priority], &Trigger{
			provider:       provider,
			name:           f.name,
			regex:          f.regex,
			handler:        f.handler,
			priority:       f.priority,
			help:           f.help,
			id:             f.id,
			alwaysWatching: f.alwaysWatching,
		})
	}
}

// Command looks up a command by exact name.
func (s *State) Command(name string) (*BotCommand, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cmd, ok := s.commands[name]
	return cmd, ok
}

// Commands returns all commands sorted by name.
func (s *State) Commands() []*BotCommand {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cmds := make([]*BotCommand, 0, len(s.commands))
	for _, cmd := range s.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })
	return cmds
}

// Module looks up a loaded module by name.
func (s *State) Module(name string) (*Module, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, ok := s.modules[name]
	return m, ok
}

// Modules returns the loaded modules sorted by name.
func (s *State) Modules() []*Module {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	mods := make([]*Module, 0, len(s.modules))
	for _, m := range s.modules {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].name < mods[j].name })
	return mods
}

// Triggers returns every trigger in dispatch order: highest priority first,
// registration order within a priority.
func (s *State) Triggers() []*Trigger {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	priorities := make([]Priority, 0, len(s.triggers))
	total := 0
	for p, bucket := range s.triggers {
		priorities = append(priorities, p)
		total += len(bucket)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i] > priorities[j] })

	out := make([]*Trigger, 0, total)
	for _, p := range priorities {
		out = append(out, s.triggers[p]...)
	}
	return out
}

// TriggersAt returns the triggers of one priority in registration order.
func (s *State) TriggersAt(priority Priority) []*Trigger {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	bucket := s.triggers[priority]
	out := make([]*Trigger, len(bucket))
	copy(out, bucket)
	return out
}

// TriggerByID looks up a trigger by its identifier.
func (s *State) TriggerByID(id uuid.UUID) (*Trigger, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, bucket := range s.triggers {
		for _, t := range bucket {
			if t.id == id {
				return t, true
			}
		}
	}
	return nil, false
}

// TriggersNamed returns all triggers called name in dispatch order.
func (s *State) TriggersNamed(name string) []*Trigger {
	var out []*Trigger
	for _, t := range s.Triggers() {
		if t.name == name {
			out = append(out, t)
		}
	}
	return out
}

// SetTriggerRegex replaces the pattern of the trigger with the given ID. The
// pattern is compiled case-insensitively. Only the trigger's regex cell is
// locked for writing; the registry itself stays readable.
func (s *State) SetTriggerRegex(id uuid.UUID, pattern string) error {
	trigger, ok := s.TriggerByID(id)
	if !ok {
		return mdwerror.Newf("no trigger with id %s", id).
			WithCode(mdwerror.CodeTriggerNotFound)
	}

	old := trigger.regex.Pattern()
	if err := trigger.regex.Replace(pattern); err != nil {
		return err
	}

	s.logger.Info("Trigger pattern replaced", log.Fields{
		"trigger": trigger.name,
		"id":      id.String(),
		"module":  trigger.provider.name,
		"old":     old,
		"new":     pattern,
	})
	return nil
}
