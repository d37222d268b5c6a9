package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpscontroller/input"
	"github.com/milk9111/fpscontroller/motion"
	"github.com/milk9111/fpscontroller/prefabs"
)

const dispatchScript = `
update(__engine, __state)
`

// Driver feeds a controller from a tengo script. The script defines
// update(engine, state), called once per Step. Movement and fire are held
// until changed; look and the one-shot buttons last a single step.
type Driver struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap

	dispatcher *input.Dispatcher
	grounded   func() bool
	scheme     motion.ControlScheme

	ticks  int64
	move   mgl64.Vec2
	fire   bool
	look   mgl64.Vec2
	jump   bool
	reload bool
	melee  bool
}

// Load compiles a script from prefabs/scripts.
func Load(name string, grounded func() bool) (*Driver, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, grounded)
}

func New(name string, src []byte, grounded func() bool) (*Driver, error) {
	if grounded == nil {
		grounded = func() bool { return false }
	}
	d := &Driver{
		name:       name,
		state:      &tengo.Map{Value: map[string]tengo.Object{}},
		dispatcher: input.NewDispatcher(0),
		grounded:   grounded,
	}
	d.engine = d.buildEngine()
	if err := d.Reload(src); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload swaps the script source, keeping the tick count and script state.
func (d *Driver) Reload(src []byte) error {
	s := tengo.NewScript(append(append([]byte{}, src...), dispatchScript...))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", d.name, err)
	}
	d.compiled = compiled
	return nil
}

func (d *Driver) Name() string {
	return d.name
}

// Ticks is the number of completed steps.
func (d *Driver) Ticks() int64 {
	return d.ticks
}

// SetScheme sets the device the script reports itself as.
func (d *Driver) SetScheme(s motion.ControlScheme) {
	d.scheme = s
}

// ControlScheme reports the scheme of the last dispatched frame.
func (d *Driver) ControlScheme() motion.ControlScheme {
	return d.dispatcher.ControlScheme()
}

// Step runs update once and delivers the resulting frame to h.
func (d *Driver) Step(h input.Handler) error {
	d.look = mgl64.Vec2{}
	d.jump, d.reload, d.melee = false, false, false

	if err := d.compiled.Set("__engine", d.engine); err != nil {
		return err
	}
	if err := d.compiled.Set("__state", d.state); err != nil {
		return err
	}
	if err := d.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s tick %d: %w", d.name, d.ticks, err)
	}

	d.dispatcher.Dispatch(input.Frame{
		Move:   d.move,
		Look:   d.look,
		Jump:   d.jump,
		Fire:   d.fire,
		Reload: d.reload,
		Melee:  d.melee,
		Scheme: d.scheme,
	}, h)
	d.ticks++
	return nil
}

func (d *Driver) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		d.move = clampUnit(mgl64.Vec2{objectAsFloat(args[0]), objectAsFloat(args[1])})
		return tengo.TrueValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.move = mgl64.Vec2{}
		return tengo.TrueValue, nil
	}}

	values["look"] = &tengo.UserFunction{Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		d.look = mgl64.Vec2{objectAsFloat(args[0]), objectAsFloat(args[1])}
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.fire = len(args) == 0 || !args[0].IsFalsy()
		return tengo.TrueValue, nil
	}}

	press := func(name string, flag *bool) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			*flag = true
			return tengo.TrueValue, nil
		}}
	}
	values["jump"] = press("jump", &d.jump)
	values["reload"] = press("reload", &d.reload)
	values["melee"] = press("melee", &d.melee)

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: d.ticks}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if d.grounded() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsFloat(obj tengo.Object) float64 {
	if obj == nil {
		return 0
	}
	if v, ok := tengo.ToFloat64(obj); ok {
		return v
	}
	return 0
}

func clampUnit(v mgl64.Vec2) mgl64.Vec2 {
	if l := v.Len(); l > 1 {
		return mgl64.Vec2{v[0] / l, v[1] / l}
	}
	return v
}
