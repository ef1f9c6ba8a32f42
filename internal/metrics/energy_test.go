package metrics

import (
	"testing"

	"github.com/san-kum/edyn/internal/engine"
	"github.com/san-kum/edyn/internal/physics"
)

func TestKineticEnergy(t *testing.T) {
	if got := KineticEnergy(2, physics.Vector2{X: 3, Y: 4}); got != 25 {
		t.Errorf("expected 25 J, got %g", got)
	}
	if got := KineticEnergy(1, physics.Zero2()); got != 0 {
		t.Errorf("expected 0 J at rest, got %g", got)
	}
}

func TestVerifyEmptyTrajectoryPasses(t *testing.T) {
	p := physics.NewElectron(physics.Zero2(), physics.Vector2{X: 1e5})
	check := VerifyMagneticEnergyConservation([]*physics.Particle{p}, [][]physics.State{{}}, DefaultRelTol, DefaultAbsTol)

	if !check.Passed {
		t.Error("empty trajectory must pass trivially")
	}
	if check.MaxRelDeviation[0] != 0 || check.MaxAbsDeviation[0] != 0 {
		t.Errorf("expected zero deviations, got rel %g abs %g", check.MaxRelDeviation[0], check.MaxAbsDeviation[0])
	}
}

func TestVerifyZeroInitialEnergyFallback(t *testing.T) {
	// E0 = 0 falls back to a unit denominator, so the relative deviation
	// equals the absolute one instead of dividing by zero.
	p := &physics.Particle{Mass: 2, Charge: 1}
	traj := []physics.State{
		{Time: 0, Velocity: physics.Zero2()},
		{Time: 1, Velocity: physics.Vector2{X: 3}},
	}

	check := VerifyMagneticEnergyConservation([]*physics.Particle{p}, [][]physics.State{traj}, DefaultRelTol, DefaultAbsTol)
	if check.MaxAbsDeviation[0] != 9 {
		t.Errorf("expected abs deviation 9 J, got %g", check.MaxAbsDeviation[0])
	}
	if check.MaxRelDeviation[0] != 9 {
		t.Errorf("expected rel deviation 9 with unit fallback, got %g", check.MaxRelDeviation[0])
	}
	if check.Passed {
		t.Error("deviation of 9 J should fail both tolerances")
	}
}

func TestVerifyDisjunctiveTolerances(t *testing.T) {
	// Tiny absolute deviation passes the check even when the relative
	// deviation is enormous; both maxima are still reported.
	p := &physics.Particle{Mass: 2e-30, Charge: 1}
	traj := []physics.State{
		{Time: 0, Velocity: physics.Vector2{X: 1}},
		{Time: 1, Velocity: physics.Vector2{X: 2}},
	}

	check := VerifyMagneticEnergyConservation([]*physics.Particle{p}, [][]physics.State{traj}, DefaultRelTol, DefaultAbsTol)
	if !check.Passed {
		t.Error("tiny absolute deviation should pass the disjunctive check")
	}
	if check.MaxRelDeviation[0] < 1 {
		t.Errorf("expected large relative deviation to be reported, got %g", check.MaxRelDeviation[0])
	}
}

func TestVerifyFailsOnRealDrift(t *testing.T) {
	p := &physics.Particle{Mass: 1, Charge: 1}
	traj := []physics.State{
		{Time: 0, Velocity: physics.Vector2{X: 1}},
		{Time: 1, Velocity: physics.Vector2{X: 2}},
	}

	check := VerifyMagneticEnergyConservation([]*physics.Particle{p}, [][]physics.State{traj}, DefaultRelTol, DefaultAbsTol)
	if check.Passed {
		t.Error("3x energy growth must fail")
	}
	if check.MaxRelDeviation[0] != 3 {
		t.Errorf("expected rel deviation 3, got %g", check.MaxRelDeviation[0])
	}
}

func TestVerifyAllParticlesMustPass(t *testing.T) {
	good := &physics.Particle{Mass: 1, Charge: 1}
	bad := &physics.Particle{Mass: 1, Charge: 1}
	steady := []physics.State{
		{Velocity: physics.Vector2{X: 1}},
		{Velocity: physics.Vector2{X: 1}},
	}
	drifting := []physics.State{
		{Velocity: physics.Vector2{X: 1}},
		{Velocity: physics.Vector2{X: 5}},
	}

	check := VerifyMagneticEnergyConservation(
		[]*physics.Particle{good, bad},
		[][]physics.State{steady, drifting},
		DefaultRelTol, DefaultAbsTol)

	if check.Passed {
		t.Error("one drifting particle must fail the overall check")
	}
	if check.MaxRelDeviation[0] != 0 {
		t.Errorf("steady particle should show zero deviation, got %g", check.MaxRelDeviation[0])
	}
}

// The reference scenario: an electron circling one full cyclotron period in
// a 0.1 T field keeps its kinetic energy to within the relative tolerance.
func TestCyclotronEnergyConservation(t *testing.T) {
	e := &physics.UniformElectricField{}
	b := &physics.UniformMagneticField{Field: physics.Vector3{Z: 0.1}}
	eng := engine.New(e, b)

	p := physics.NewElectron(physics.Zero2(), physics.Vector2{X: 1e5})
	period := physics.CyclotronPeriod(p.Mass, p.Charge, 0.1)

	cfg := engine.Config{Dt: 5e-12, Duration: period, RecordTrajectory: true}
	res, err := eng.Run([]*physics.Particle{p}, cfg, 0)
	if err != nil {
		t.Fatal(err)
	}

	check := VerifyMagneticEnergyConservation([]*physics.Particle{p}, res.Trajectories, DefaultRelTol, DefaultAbsTol)
	if !check.Passed {
		t.Fatalf("energy conservation failed: rel %g, abs %g", check.MaxRelDeviation[0], check.MaxAbsDeviation[0])
	}
	if check.MaxRelDeviation[0] > DefaultRelTol {
		t.Errorf("relative deviation %g above %g", check.MaxRelDeviation[0], DefaultRelTol)
	}
}
