package ecs

import (
	"github.com/ntibi/ik2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// IKData is the component payload: the chain an entity owns. By convention
// the entity holding the component is the one carrying the chain's effector.
type IKData struct {
	Chain *ik2d.Chain
}

// IK is the Donburi component type for IK chains.
var IK = donburi.NewComponentType[IKData]()

// TargetReached is published when a chain's effector converges onto its
// target during a Solver update.
type TargetReached struct {
	Entity   donburi.Entity
	Position ik2d.Vec2
}

// TargetReachedEventType is the Donburi event type for convergence.
// Subscribe to this in your ECS systems and call events.ProcessAllEvents
// after Solver.Update to receive it.
var TargetReachedEventType = events.NewEventType[TargetReached]()

var ikQuery = donburi.NewQuery(filter.Contains(IK))

// Attach creates an IK component on entity carrying the given chain.
func Attach(w donburi.World, entity donburi.Entity, chain *ik2d.Chain) {
	entry := w.Entry(entity)
	entry.AddComponent(IK)
	IK.SetValue(entry, IKData{Chain: chain})
}

// Solver runs every IK component against a scene once per update.
type Solver struct {
	scene *ik2d.Scene
}

// NewSolver creates a Solver bound to the scene that owns the joint nodes.
func NewSolver(scene *ik2d.Scene) *Solver {
	return &Solver{scene: scene}
}

// Update propagates the scene's transforms and solves every entity's chain,
// publishing TargetReachedEventType for each chain that converged. Call once
// per tick, after any system that moves nodes.
func (s *Solver) Update(w donburi.World, dt float64) {
	s.scene.Propagate()
	ikQuery.Each(w, func(entry *donburi.Entry) {
		data := IK.Get(entry)
		if data.Chain == nil {
			return
		}
		if s.scene.SolveChain(data.Chain, dt) == ik2d.SolveConverged {
			effector := s.scene.Joint(data.Chain.Effector())
			if effector == nil {
				return
			}
			TargetReachedEventType.Publish(w, TargetReached{
				Entity:   entry.Entity(),
				Position: effector.WorldPosition(),
			})
		}
	})
}
