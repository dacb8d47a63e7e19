package sim

// Tunables for the orbit simulation. Distances are pixels, speeds are
// pixels (or radians) per tick at 60 ticks per second.
const (
	PlayerRadius      = 8.0
	StartOrbitDist    = 75.0
	LaunchSpeed       = 13.0
	MaxFlyTicks       = 120 // ~2s of free flight before the run ends
	ComboWindowTicks  = 150
	ComboPoints       = 10
	CollectiblePoints = 50
	TrailLength       = 20
	TrailFade         = 0.05

	CaptureMinClearance = 20.0  // orbit never closer than radius+20
	PlanetPullRange     = 300.0 // nearest planet pulls inside this range
	PlanetPull          = 0.035
	BashReach           = 40.0 // extra shield-bash reach on capture
	SmashDamping        = 0.9
	PickupReach         = 10.0

	BlackHoleRadius        = 25.0
	BlackHoleGravityRadius = 150.0
	BlackHolePull          = 0.25
	BlackHoleSpin          = 0.1

	BoundaryBelow = 200.0 // screen-relative Y beyond H+200 is fatal
	BoundarySide  = 150.0
	CleanupBelow  = 400.0 // entities more than H+400 below the camera are dropped

	CameraUpper  = 0.4 // dead zone, fraction of viewport height
	CameraLower  = 0.7
	CameraSmooth = 0.08

	ShakeDecay   = 0.85
	ShakeCutoff  = 0.5
	ShakeCapture = 5.0
	ShakeSmash   = 10.0
	ShakeDeath   = 20.0

	AltitudeUnit = 10.0 // pixels per meter of score
)

// Generator tunables.
const (
	MinActivePlanets    = 15
	BossEvery           = 20
	SpawnMargin         = 100.0
	PlanetGapMin        = 180.0
	PlanetGapJitter     = 120.0
	PlanetRadiusMin     = 30.0
	PlanetRadiusJitter  = 30.0
	GravityScale        = 2.8
	SunGravityScale     = 3.5
	DifficultyDepth     = 10000.0
	FirstPlanetRadius   = 45.0
	FirstPlanetSpeed    = 0.04
	BossGap             = 400.0
	BossRadius          = 90.0
	BossRingCount       = 8
	BossRingDist        = 220.0
	BossRingRadius      = 25.0
	BossRingSpeed       = 0.05
	BossRainCount       = 4
	BossRainHeight      = 800.0
	BossRainJitter      = 400.0
	MovingDifficulty    = 0.2
	AsteroidDifficulty  = 0.1
	BlackHoleDifficulty = 0.15
	BlackHoleOffset     = 300.0
	CollectibleOffset   = 100.0
	CollectibleSpread   = 150.0
	CollectibleRadius   = 8.0
	FallingRadius       = 20.0
)

// Chasing sun tunables (survival mode).
const (
	SunRadius        = 300.0
	SunConsumeRadius = 350.0
	SunStartBelow    = 500.0
	SunStartSpeed    = 0.6
	SunAccel         = 0.0003
	SunMaxSpeed      = 3.0
	SunPullRange     = 600.0
	SunPullFactor    = 0.012
	SunCoronaSpin    = 0.03
)
