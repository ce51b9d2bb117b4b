// Package ecs stores ik2d chains as [Donburi] components and drives them
// from an ECS system, for games that schedule their logic through an ECS
// world instead of calling Scene.Step directly.
//
// Attach a chain to an entity with [Attach], then run [Solver.Update] once
// per tick. Convergence is published to [TargetReachedEventType]; subscribe
// in your ECS systems and process events after the update.
//
// Usage:
//
//	solver := ecs.NewSolver(scene)
//	ecs.Attach(world, entity, chain)
//	// each tick:
//	solver.Update(world, dt)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
