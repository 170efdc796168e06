package config

const (
	defaultStagingDir   = "~/.local/share/trajview/staging"
	defaultOutputDir    = "."
	defaultLogDir       = "~/.local/share/trajview/logs"
	defaultFrameWidth   = 640
	defaultFrameHeight  = 480
	defaultMarkerRadius = 3.0
	defaultElevationDeg = 30.0
	defaultAzimuthDeg   = -60.0
	defaultFPS          = 10
	defaultOutputName   = "argon_simulation.mp4"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Render: Render{
			Width:        defaultFrameWidth,
			Height:       defaultFrameHeight,
			MarkerRadius: defaultMarkerRadius,
			ElevationDeg: defaultElevationDeg,
			AzimuthDeg:   defaultAzimuthDeg,
			Workers:      0, // resolved to runtime.NumCPU() by the dispatcher
		},
		Video: Video{
			FPS:          defaultFPS,
			OutputName:   defaultOutputName,
			VerifyOutput: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
