//go:build !ci

package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

// fallback tones for cues without a sound file
var tones = map[Cue]struct {
	freq     float64
	duration time.Duration
}{
	CueTurn:  {880, 120 * time.Millisecond},
	CueWin:   {1320, 400 * time.Millisecond},
	CueLose:  {330, 400 * time.Millisecond},
	CueError: {220, 80 * time.Millisecond},
}

type SoundManager struct {
	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init opens the speaker and loads assets/sounds/<cue>.{mp3,wav}
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	for cue, tone := range tones {
		sm.buffers[cue] = toneBuffer(tone.freq, tone.duration)
	}
	return sm.loadSoundFiles("assets/sounds")
}

func (sm *SoundManager) loadSoundFiles(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		buffer, err := loadSoundFile(filepath.Join(dir, name), ext)
		if err != nil {
			continue
		}
		sm.buffers[Cue(strings.TrimSuffix(name, filepath.Ext(name)))] = buffer
	}
	return nil
}

func loadSoundFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4})
	buffer.Append(resampled)
	return buffer, nil
}

// toneBuffer renders a sine beep with a linear fade-out
func toneBuffer(freq float64, d time.Duration) *beep.Buffer {
	total := sampleRate.N(d)
	pos := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sampleRate)
			v := 0.3 * math.Sin(2*math.Pi*freq*t) * (1 - float64(pos)/float64(total))
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})

	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(tone)
	return buffer
}

func (sm *SoundManager) Play(cue Cue) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.enabled {
		return
	}
	buffer, ok := sm.buffers[cue]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = false
}
