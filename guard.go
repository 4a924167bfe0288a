package optsync

import "sort"

// guardTable holds at most one deferred write per option path. A pending
// guard means a widget-originated value is waiting one turn before it is
// written back, so an authoritative prop update arriving first can cancel it.
type guardTable struct {
	scheduler Scheduler
	pending   map[string]*guardEntry
	flush     func(path string, value any)
}

// guardEntry identifies one arming of a path. It is stored before the task
// is scheduled, so schedulers that run callbacks inline still find it.
type guardEntry struct {
	task Task
}

func newGuardTable(scheduler Scheduler, flush func(path string, value any)) *guardTable {
	return &guardTable{
		scheduler: scheduler,
		pending:   map[string]*guardEntry{},
		flush:     flush,
	}
}

// arm schedules the write of value to path unless a guard is already
// pending for path, in which case the first value wins.
func (g *guardTable) arm(path string, value any) bool {
	if _, exists := g.pending[path]; exists {
		return false
	}
	entry := &guardEntry{}
	g.pending[path] = entry
	task := g.scheduler.Schedule(func() {
		if g.pending[path] != entry {
			return
		}
		// Entry stays armed during the write: a widget echo of it coalesces.
		g.flush(path, value)
		if g.pending[path] == entry {
			delete(g.pending, path)
		}
	})
	if g.pending[path] == entry {
		entry.task = task
	}
	return true
}

// cancel drops the pending guard for path.
func (g *guardTable) cancel(path string) bool {
	entry, ok := g.pending[path]
	if !ok {
		return false
	}
	delete(g.pending, path)
	if entry.task != nil {
		entry.task.Cancel()
	}
	return true
}

func (g *guardTable) has(path string) bool {
	_, ok := g.pending[path]
	return ok
}

func (g *guardTable) paths() []string {
	if len(g.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(g.pending))
	for path := range g.pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
