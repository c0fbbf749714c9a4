package contracts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyDeterministic(t *testing.T) {
	a := Identify("contract.pdf", "some contract text")
	b := Identify("contract.pdf", "some contract text")
	assert.Equal(t, a, b)
}

func TestIdentifyNamespaces(t *testing.T) {
	labeled := Identify("contract.pdf", "same text")
	pasted := Identify("", "same text")

	assert.True(t, strings.HasPrefix(string(labeled), "contract.pdf_"))
	assert.True(t, strings.HasPrefix(string(pasted), "text_"))
	assert.NotEqual(t, labeled, pasted)
}

func TestIdentifyEmptyText(t *testing.T) {
	assert.Equal(t, ContractID("text_0"), Identify("", ""))
	assert.Equal(t, ContractID("a.txt_0"), Identify("a.txt", ""))
}

func TestIdentifyLabelSanitized(t *testing.T) {
	id := Identify("My Contract (v2).pdf", "body")
	assert.True(t, strings.HasPrefix(string(id), "My-Contract-v2-.pdf_"))
}

func TestIdentifyPrefixBound(t *testing.T) {
	head := strings.Repeat("a", 5000)

	// Documents diverging only after the first 5000 code units share an
	// identifier and therefore a history lineage.
	assert.Equal(t,
		Identify("x", head+strings.Repeat("b", 2000)),
		Identify("x", head+strings.Repeat("c", 9000)),
	)

	// A change inside the prefix changes the identifier.
	assert.NotEqual(t,
		Identify("x", head),
		Identify("x", "b"+head[1:]),
	)
}

func TestIdentifyDifferentTexts(t *testing.T) {
	assert.NotEqual(t, Identify("", "a"), Identify("", "b"))
}

func TestIdentifyNonASCII(t *testing.T) {
	// Astral characters count as two code units; the call must stay total.
	id := Identify("", "données personnelles \U0001F512")
	assert.True(t, strings.HasPrefix(string(id), "text_"))
	assert.Equal(t, id, Identify("", "données personnelles \U0001F512"))
}
