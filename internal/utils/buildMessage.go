package utils

import (
	"fmt"
	"strings"
)

const userSpeakerLabel = "Você"

// BuildTranscriptLine formata uma fala finalizada para o painel de transcricao.
func BuildTranscriptLine(speaker, text string) string {
	return fmt.Sprintf("%s: %s", speaker, strings.TrimSpace(text))
}

// BuildUserLine formata a fala do usuario ("Você: ...").
func BuildUserLine(text string) string {
	return BuildTranscriptLine(userSpeakerLabel, text)
}

// UserLineText extrai o texto de uma linha criada por BuildUserLine.
func UserLineText(line string) (string, bool) {
	prefix := userSpeakerLabel + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
}

func BuildSeedStart(total int) string {
	return fmt.Sprintf("Iniciando carga de %d termos...", total)
}

func BuildSeedChecking(term string) string {
	return fmt.Sprintf("Verificando/Gerando: %s...", term)
}

func BuildSeedDone(term string) string {
	return fmt.Sprintf("✅ %s processado.", term)
}

func BuildSeedFailed(term string) string {
	return fmt.Sprintf("❌ Erro ao processar %s.", term)
}

func BuildSeedFinished() string {
	return "Carga finalizada!"
}

func BuildSeedStoreMissing() string {
	return "ERRO: banco de termos não configurado. Verifique DATABASE_URL ou SQLITE_PATH."
}
