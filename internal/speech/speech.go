// Package speech plays prompts aloud through a pluggable synthesizer.
package speech

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Voice is a synthesizer voice tagged with a language such as "en-US"
type Voice struct {
	Name string
	Lang string
}

// Synthesizer renders text with a voice. Speak must return once ctx is cancelled.
type Synthesizer interface {
	Voices() []Voice
	Speak(ctx context.Context, text string, voice *Voice, lang string) error
}

// PickVoice chooses the voice for a language hint: an exact prefix match,
// then a match on the two-letter language, then the first voice.
func PickVoice(voices []Voice, lang string) *Voice {
	pref := strings.ToLower(lang)
	if pref == "" {
		pref = "en"
	}
	for i := range voices {
		if voices[i].Lang != "" && strings.HasPrefix(strings.ToLower(voices[i].Lang), pref) {
			return &voices[i]
		}
	}
	if len(pref) > 2 {
		short := pref[:2]
		for i := range voices {
			if voices[i].Lang != "" && strings.HasPrefix(strings.ToLower(voices[i].Lang), short) {
				return &voices[i]
			}
		}
	}
	if len(voices) > 0 {
		return &voices[0]
	}
	return nil
}

// Player speaks one utterance at a time; starting a new one cancels the previous
type Player struct {
	synth  Synthesizer
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPlayer creates a player over synth
func NewPlayer(synth Synthesizer, logger *zap.Logger) *Player {
	return &Player{synth: synth, logger: logger}
}

// Play stops any utterance in flight and starts speaking text in the background
func (p *Player) Play(text, lang string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	voice := PickVoice(p.synth.Voices(), lang)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.synth.Speak(ctx, text, voice, lang); err != nil && ctx.Err() == nil {
			p.logger.Warn("Failed to speak", zap.String("lang", lang), zap.Error(err))
		}
	}()
}

// Stop cancels the current utterance and waits for playback to end
func (p *Player) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// LogSynthesizer records utterances in the log. It is used when no speech
// engine is configured.
type LogSynthesizer struct {
	logger *zap.Logger
	voices []Voice
}

// NewLogSynthesizer creates a synthesizer that offers the given voices
func NewLogSynthesizer(logger *zap.Logger, voices ...Voice) *LogSynthesizer {
	return &LogSynthesizer{logger: logger, voices: voices}
}

func (s *LogSynthesizer) Voices() []Voice {
	return s.voices
}

func (s *LogSynthesizer) Speak(ctx context.Context, text string, voice *Voice, lang string) error {
	fields := []zap.Field{zap.String("text", text), zap.String("lang", lang)}
	if voice != nil {
		fields = append(fields, zap.String("voice", voice.Name))
	}
	s.logger.Info("Speaking", fields...)
	return ctx.Err()
}
