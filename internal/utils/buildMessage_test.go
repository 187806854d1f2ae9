package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTranscriptLines(t *testing.T) {
	assert.Equal(t, "Você: o que é docker", BuildUserLine("  o que é docker "))
	assert.Equal(t, "Jessica: Oi, o que quer saber?", BuildTranscriptLine("Jessica", "Oi, o que quer saber?"))
}

func TestUserLineText(t *testing.T) {
	text, ok := UserLineText(BuildUserLine("Kubernetes"))
	assert.True(t, ok)
	assert.Equal(t, "Kubernetes", text)

	_, ok = UserLineText("Rick: Kubernetes")
	assert.False(t, ok)
}

func TestBuildSeedMessages(t *testing.T) {
	assert.Equal(t, "Iniciando carga de 20 termos...", BuildSeedStart(20))
	assert.Equal(t, "Verificando/Gerando: Docker...", BuildSeedChecking("Docker"))
	assert.Equal(t, "✅ Docker processado.", BuildSeedDone("Docker"))
	assert.Equal(t, "❌ Erro ao processar Docker.", BuildSeedFailed("Docker"))
	assert.Equal(t, "Carga finalizada!", BuildSeedFinished())
}
