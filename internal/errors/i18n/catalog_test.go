package i18n

import "testing"

func TestFormatTemplatesMetadata(t *testing.T) {
	catalog := GetCatalog("en-US")

	got := catalog.Format(CodeForageUnknownBiome, map[string]string{"Biome": "volcano"})
	if got != "Unknown biome: volcano" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatFallsBackToCode(t *testing.T) {
	catalog := GetCatalog("en-US")

	if got := catalog.Format("NO_SUCH_CODE", nil); got != "NO_SUCH_CODE" {
		t.Errorf("Format() unknown code = %q", got)
	}
}

func TestFormatWithMissingMetadata(t *testing.T) {
	catalog := GetCatalog("en-US")

	// Template variables without metadata render empty, not broken.
	got := catalog.Format(CodeForageUnknownBiome, nil)
	if got != "Unknown biome: " {
		t.Errorf("Format() without metadata = %q", got)
	}
}

func TestGetCatalogFallsBackToEnglish(t *testing.T) {
	catalog := GetCatalog("xx-XX")
	if catalog.Locale() != "en-US" {
		t.Errorf("Locale() = %s, want en-US fallback", catalog.Locale())
	}
}

func TestRegisterCatalog(t *testing.T) {
	RegisterCatalog("pt-BR", NewCatalog("pt-BR", map[Code]string{
		CodeForageUnknownBiome: "Bioma desconhecido: {{.Biome}}",
	}))

	catalog := GetCatalog("pt-BR")
	got := catalog.Format(CodeForageUnknownBiome, map[string]string{"Biome": "vulcano"})
	if got != "Bioma desconhecido: vulcano" {
		t.Errorf("Format() = %q", got)
	}
}
