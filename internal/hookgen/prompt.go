package hookgen

import (
	"fmt"
	"strings"

	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// buildPrompt embeds the source content and generation parameters into the
// instruction prompt. The model must answer with a bare JSON array of
// strings; the generator parses nothing else.
func buildPrompt(content string, cfg models.HookConfig, variants int) string {
	var sb strings.Builder

	sb.WriteString("Actúa como un experto en copy y redes sociales. ")
	fmt.Fprintf(&sb, "Transforma el siguiente contenido en %d variantes de \"Hooks\" impactantes.\n\n", variants)
	fmt.Fprintf(&sb, "TIPO DE HOOK: %s\n", cfg.Type.Label())
	fmt.Fprintf(&sb, "TONO: %s\n", cfg.Tone.Label())
	fmt.Fprintf(&sb, "PLATAFORMA DESTINO: %s\n\n", cfg.Platform.Label())
	sb.WriteString("CONTENIDO DE ORIGEN:\n\"\"\"\n")
	sb.WriteString(content)
	sb.WriteString("\n\"\"\"\n\n")
	sb.WriteString("Reglas:\n")
	sb.WriteString("- Mantén el idioma original (español si es posible).\n")
	sb.WriteString("- El hook debe ser la primera oración para detener el scroll.\n")
	fmt.Fprintf(&sb, "- Adaptado estrictamente al formato de %s.\n", cfg.Platform.Label())
	fmt.Fprintf(&sb, "- Devuelve exactamente %d opciones como un array JSON de strings, sin texto adicional.\n", variants)

	return sb.String()
}
