package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"advisorly/config"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB
	AllowedExtension = ".wav"
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	return &header, nil
}

// convertAudio normalizes uploads to 16kHz mono LINEAR16 for the speech API.
func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// VoiceChatHandler transcribes one voice utterance and feeds it through the
// assistant as a normal text turn.
func VoiceChatHandler(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	language := c.DefaultPostForm("language", config.AppConfig.SpeechLanguageCode)
	if language == "" {
		language = "en-IN"
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}

	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create temp file", "details": err.Error()})
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := io.Copy(tempInput, io.LimitReader(file, MaxFileSize)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save audio file", "details": err.Error()})
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create output temp file", "details": err.Error()})
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio conversion failed", "details": err.Error()})
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read converted audio", "details": err.Error()})
		return
	}
	if _, err := parseWaveHeader(audioData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var opts []option.ClientOption
	if config.AppConfig.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize speech client", "details": err.Error()})
		return
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	sttResp, err := client.Recognize(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed", "details": err.Error()})
		return
	}

	var transcript strings.Builder
	for _, result := range sttResp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())
	if text == "" {
		c.JSON(http.StatusOK, gin.H{"transcription": "", "reply": "I couldn't hear anything in that recording. Could you try again?"})
		return
	}

	resp, err := AssistantService.ProcessTurn(ctx, sessionID, text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant turn failed", "details": err.Error()})
		return
	}
	if len(resp.Commands) > 0 && ToolDispatcher != nil {
		resp.ToolResults = ToolDispatcher.Dispatch(ctx, resp.Commands)
	}
	scheduleReminderIfBooked(resp)

	c.JSON(http.StatusOK, gin.H{
		"transcription": text,
		"turn":          resp,
	})
}
