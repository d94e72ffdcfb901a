package physics

import "time"

// Arena defaults, in pixels and frames at 60Hz
const (
	DefaultGravity       = 0.18
	DefaultBuoyancy      = 0.55
	DefaultBuoyancyZone  = 0.35 // fraction of chamber height above the floor
	DefaultLateralJitter = 0.12
	DefaultFriction      = 0.992
	DefaultMaxSpeed      = 9.0
	DefaultMinSpeed      = 0.6
	DefaultKickSpeed     = 1.5
	DefaultWallDamping   = 0.85
	DefaultRestitution   = 0.9
	DefaultSpinFactor    = 0.05
)

// FrameRate is the nominal simulation rate; Step takes dt in frames
const FrameRate = 60

// FrameDuration is one simulation frame at FrameRate
const FrameDuration = time.Second / FrameRate

// Design canvas the track percentages refer to
const (
	DesignWidth  = 1920
	DesignHeight = 1080
)

// Path and flight defaults
const (
	DefaultSamplesPerSegment = 24
	DefaultFlightDuration    = 2500 * time.Millisecond
)

// Particle defaults
const (
	DefaultBurstCount   = 48
	DefaultBurstSpeed   = 6.0
	DefaultParticleLife = 90 // frames
	ParticleGravity     = 0.12
	ParticleDrag        = 0.97
)

// Log messages
const (
	LogMsgTokenLaunched = "Machine token launched"
	LogMsgTokenLanded   = "Machine token landed on podium"
	LogMsgMachineLoaded = "Machine chamber loaded"
	LogMsgRoundReset    = "Machine round reset"

	LogMsgLaunchQueued       = "Machine launch queued behind flying token"
	LogMsgQueuedLaunchFailed = "Queued machine launch failed"
)

// Error messages
const (
	ErrMsgTokenNotInArena  = "token not in chamber"
	ErrMsgTooFewPoints     = "path needs at least two control points"
)
