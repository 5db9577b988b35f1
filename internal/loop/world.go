package loop

import (
	"github.com/tomz197/spaceshooter/internal/object"
)

// World owns every live entity. All holds them in draw order; Meteors and
// Lasers are the collision groups. Removing an object from the world is
// what destroys it.
type World struct {
	All     object.Group
	Meteors object.Group
	Lasers  object.Group

	toSpawn []object.Object // Objects to add after the current update cycle
}

// Add inserts obj into All and into its type group.
func (w *World) Add(obj object.Object) {
	w.All.Add(obj)
	switch obj.(type) {
	case *object.Meteor:
		w.Meteors.Add(obj)
	case *object.Laser:
		w.Lasers.Add(obj)
	}
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		w.Add(obj)
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Kill removes obj from every group.
func (w *World) Kill(obj object.Object) {
	w.All.Remove(obj)
	w.Meteors.Remove(obj)
	w.Lasers.Remove(obj)
}

// Clear removes every entity, including queued spawns.
func (w *World) Clear() {
	w.All.Clear()
	w.Meteors.Clear()
	w.Lasers.Clear()
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Update updates every object with the same context and removes any that
// request removal. Objects spawned during the pass join after it.
func (w *World) Update(ctx object.UpdateContext) error {
	ctx.Spawner = w
	for _, obj := range w.All.Objects() {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			w.Kill(obj)
		}
	}
	w.FlushSpawned()
	return nil
}

// Draw draws every object in insertion order.
func (w *World) Draw(ctx object.DrawContext) error {
	for _, obj := range w.All.Objects() {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
