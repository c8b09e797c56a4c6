package device

// No-op peripherals for headless hosts (SIMON_NO_AUDIO, CI runs).

type NopDisplay struct{}

func (NopDisplay) Clear() {}

func (NopDisplay) WriteAt(row, col int, text string) {}

type NopLights struct{}

func (NopLights) Set(c Color, on bool) {}

type NopTone struct{}

func (NopTone) Play(freqHz float64) {}

func (NopTone) Stop() {}
