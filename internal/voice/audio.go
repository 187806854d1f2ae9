package voice

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// InputSampleRate e a taxa de captura do microfone.
	InputSampleRate = 16000
	// OutputSampleRate e a taxa do audio devolvido pelo modelo.
	OutputSampleRate = 24000
	// FrameSize e o numero de amostras por quadro enviado ao modelo.
	FrameSize = 4096

	// InputMIMEType marca cada quadro enviado: PCM 16 bits, 16 kHz, mono.
	InputMIMEType = "audio/pcm;rate=16000"
)

// Buffer e um trecho de audio pronto para tocar.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Duration devolve a duracao do buffer em segundos.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// DurationTime e Duration como time.Duration.
func (b Buffer) DurationTime() time.Duration {
	return time.Duration(b.Duration() * float64(time.Second))
}

// EncodePCM16 corta as amostras em [-1,1] e quantiza para int16 little-endian.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(clip(s)*0x7FFF)))
	}
	return out
}

func clip(s float32) float32 {
	switch {
	case s != s: // NaN
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

// DecodePCM16 converte PCM int16 little-endian em amostras normalizadas.
// Um byte sobrando no fim e ignorado.
func DecodePCM16(data []byte) []float32 {
	out := make([]float32, len(data)/2)
	for i := range out {
		out[i] = float32(int16(binary.LittleEndian.Uint16(data[i*2:]))) / 32768.0
	}
	return out
}

// EncodeFrame prepara um quadro do microfone para envio ao modelo.
func EncodeFrame(samples []float32) AudioChunk {
	return AudioChunk{
		Data:     base64.StdEncoding.EncodeToString(EncodePCM16(samples)),
		MIMEType: InputMIMEType,
	}
}

// DecodeChunk decodifica o audio base64 devolvido pelo modelo.
func DecodeChunk(data string, sampleRate int) (Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Buffer{}, fmt.Errorf("audio base64 invalido: %w", err)
	}
	return Buffer{Samples: DecodePCM16(raw), SampleRate: sampleRate}, nil
}

// DecodeFloat32LE le amostras float32 little-endian (formato enviado pelo navegador).
func DecodeFloat32LE(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}
