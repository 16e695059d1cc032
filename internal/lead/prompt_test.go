package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadrelay/internal/call"
)

func TestBuildPromptDeterministic(t *testing.T) {
	transcript := []call.TranscriptEntry{
		{Role: "agent", Message: "Hola, ¿en qué puedo ayudarte?"},
		{Role: "user", Message: "Necesito un chatbot"},
	}

	system1, user1 := BuildPrompt(transcript, "resumen")
	system2, user2 := BuildPrompt(transcript, "resumen")

	assert.Equal(t, system1, system2)
	assert.Equal(t, user1, user2)
}

func TestBuildPromptConcatenation(t *testing.T) {
	transcript := []call.TranscriptEntry{
		{Role: "agent", Message: "Hola"},
		{Role: "user", Message: "Quiero una demo"},
	}

	_, user := BuildPrompt(transcript, "cliente pide demo")

	// Entries are concatenated with no separator between them.
	assert.Equal(t, "SUMMARY: cliente pide demo\nagent: Holauser: Quiero una demo", user)
}

func TestBuildPromptEmptyTranscript(t *testing.T) {
	_, user := BuildPrompt(nil, "")

	assert.Equal(t, "SUMMARY: \n", user)
}

func TestBuildPromptSystemInstruction(t *testing.T) {
	system, _ := BuildPrompt(nil, "")

	assert.NotEmpty(t, system)
	assert.True(t, strings.Contains(system, "interestLevel"))
	assert.True(t, strings.Contains(system, "Alto"))
	assert.True(t, strings.Contains(system, "Medio"))
	assert.True(t, strings.Contains(system, "Bajo"))
}
