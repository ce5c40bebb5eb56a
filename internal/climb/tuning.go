package climb

// Defaults for a climbing session.
const (
	DefaultMaxStamina      = 100.0
	DefaultStaminaLoss     = 15.0 // per second while gripping
	DefaultStaminaRegen    = 20.0 // per second while released
	DefaultFallAccel       = 0.2  // fall speed gained per second with no hand pulling
	DefaultFallSpeedFloor  = 0.0  // fall speed while any hand pulls
	DefaultMaxFallSpeed    = 0.0  // 0 = unbounded
	DefaultWallSpacing     = 5.0
	DefaultWallTrigger     = 0.0 // current wall Y + this reaching the player spawns the next wall
	DefaultGrabRadius      = 0.15
	DefaultWobbleMaxAngle  = 10.0 // degrees
	DefaultWobbleSpeed     = 2.0  // radians per second
	DefaultWobbleIntervalA = 2.0
	DefaultWobbleIntervalB = 5.0
	DefaultWobbleDuration  = 1.5
	DefaultBreakDuration   = 3.0
	DefaultPowerUpRestore  = 40.0
)

// Tuning holds the per-session knobs. Field tags let the server load it from
// the environment; the headless runner uses DefaultTuning directly.
type Tuning struct {
	MaxStamina     float32 `env:"MAX_STAMINA" envDefault:"100"`
	StaminaLoss    float32 `env:"STAMINA_LOSS" envDefault:"15"`
	StaminaRegen   float32 `env:"STAMINA_REGEN" envDefault:"20"`
	FallAccel      float32 `env:"FALL_ACCEL" envDefault:"0.2"`
	FallSpeedFloor float32 `env:"FALL_SPEED_FLOOR" envDefault:"0"`
	MaxFallSpeed   float32 `env:"MAX_FALL_SPEED" envDefault:"0"`
	WallSpacing    float32 `env:"WALL_SPACING" envDefault:"5"`
	WallTrigger    float32 `env:"WALL_TRIGGER" envDefault:"0"`
	GrabRadius     float32 `env:"GRAB_RADIUS" envDefault:"0.15"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxStamina:     DefaultMaxStamina,
		StaminaLoss:    DefaultStaminaLoss,
		StaminaRegen:   DefaultStaminaRegen,
		FallAccel:      DefaultFallAccel,
		FallSpeedFloor: DefaultFallSpeedFloor,
		MaxFallSpeed:   DefaultMaxFallSpeed,
		WallSpacing:    DefaultWallSpacing,
		WallTrigger:    DefaultWallTrigger,
		GrabRadius:     DefaultGrabRadius,
	}
}
