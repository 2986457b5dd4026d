package main

import (
	"fmt"

	"github.com/akmonengine/hop"
	"github.com/akmonengine/hop/actor"
)

// SetupScene creates the camera simulation, with a strafe to the right during the jump
func SetupScene(restitution float64) *hop.Simulation {
	config := hop.DefaultConfig()
	config.Restitution = restitution

	sim, err := hop.New(config)
	if err != nil {
		panic(err)
	}

	sim.Events.Subscribe(hop.TAKEOFF, func(event hop.Event) {
		e := event.(hop.TakeoffEvent)
		fmt.Printf("Takeoff at tick %d, velocity %v\n", e.Tick, e.Velocity)
	})
	sim.Events.Subscribe(hop.BOUNCE, func(event hop.Event) {
		e := event.(hop.BounceEvent)
		fmt.Printf("Bounce at tick %d: height=%.3f impact=%.3f rebound=%.3f\n", e.Tick, e.Position.Y(), e.ImpactSpeed, e.ReboundSpeed)
	})
	sim.Events.Subscribe(hop.LAND, func(event hop.Event) {
		e := event.(hop.LandEvent)
		fmt.Printf("Landed at tick %d after %d bounces (%d ticks)\n", e.Tick, e.Bounces, e.Airtime)
	})

	return sim
}

func main() {
	fmt.Println("Camera jump")
	fmt.Println("===========")

	sim := SetupScene(hop.DEFAULT_RESTITUTION)
	sim.Jump()

	const maxTicks = 400
	for tick := 1; tick <= maxTicks; tick++ {
		// Moving keys are polled by the host, independently of the jump
		sim.Body.Transform.Position = sim.Camera.Move(sim.Body.Transform.Position, actor.Right)
		sim.Tick()

		if tick%10 == 0 {
			view := sim.View()
			fmt.Printf("--- tick %d: position %v, velocity %.3f\n", tick, sim.Position(), sim.Velocity().Y())
			fmt.Printf("    view translation %v\n", view.Col(3).Vec3())
		}

		if sim.Phase() == hop.PhaseIdle {
			break
		}
	}
}
