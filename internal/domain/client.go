// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strings"
	"time"
)

// Estágios do funil de vendas de um cliente
const (
	StageProspect  = "prospect"
	StageConnected = "connected"
	StageReplied   = "replied"
	StageMeeting   = "meeting"
	StageProposal  = "proposal"
	StageClosed    = "closed" // Negócio fechado (ganho)
	StageLost      = "lost"
)

// ClientRecord representa um cliente/negócio do CRM
type ClientRecord struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"company_name"`
	ContactName string     `json:"contact_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Stage       string     `json:"stage"`
	DealValue   float64    `json:"deal_value"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// IsClosed indica se o negócio foi fechado com ganho
func (c ClientRecord) IsClosed() bool {
	return c.Stage == StageClosed
}

// IsActive indica se o negócio ainda está em andamento (nem fechado nem perdido)
func (c ClientRecord) IsActive() bool {
	return c.Stage != StageClosed && c.Stage != StageLost
}

// StageFallbackLabel é o rótulo usado para estágios ausentes ou desconhecidos
const StageFallbackLabel = "Unknown"

// StageLabel converte o valor literal de um estágio em rótulo de exibição
// (ex: "closed-won" vira "Closed Won")
func StageLabel(stage string) string {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return StageFallbackLabel
	}

	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(stage)

	words := strings.Fields(normalized)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
