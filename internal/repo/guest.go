package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmfontes/pousada-checkin/internal/domain"
)

const guestColumns = `id, checkin_id, nome_completo, data_nascimento, idade, documento,
	orgao_expedidor, uf_documento, cpf, endereco, cep, cidade, estado, pais,
	ddd, telefone, email, observacoes, is_principal, created_at`

// insertGuest writes one guest row. posicao records the submitted order so
// companion lists read back exactly as they were sent; the principal is
// always position 0.
func insertGuest(ctx context.Context, db db, g domain.Guest, posicao int) (domain.Guest, error) {
	const q = `
		INSERT INTO hospedes (
			checkin_id, posicao, nome_completo, data_nascimento, idade, documento,
			orgao_expedidor, uf_documento, cpf, endereco, cep, cidade, estado, pais,
			ddd, telefone, email, observacoes, is_principal
		)
		VALUES (
			@checkin_id, @posicao, @nome_completo, @data_nascimento, @idade, @documento,
			@orgao_expedidor, @uf_documento, @cpf, @endereco, @cep, @cidade, @estado, @pais,
			@ddd, @telefone, @email, @observacoes, @is_principal
		)
		RETURNING ` + guestColumns

	args := pgx.NamedArgs{
		"checkin_id":      g.CheckinID,
		"posicao":         posicao,
		"nome_completo":   g.NomeCompleto,
		"data_nascimento": g.DataNascimento,
		"idade":           g.Idade,
		"documento":       g.Documento,
		"orgao_expedidor": nilIfEmpty(g.OrgaoExpedidor),
		"uf_documento":    nilIfEmpty(g.UFDocumento),
		"cpf":             nilIfEmpty(g.CPF),
		"endereco":        nilIfEmpty(g.Endereco),
		"cep":             nilIfEmpty(g.CEP),
		"cidade":          nilIfEmpty(g.Cidade),
		"estado":          nilIfEmpty(g.Estado),
		"pais":            nilIfEmpty(g.Pais),
		"ddd":             g.DDD,
		"telefone":        g.Telefone,
		"email":           nilIfEmpty(g.Email),
		"observacoes":     nilIfEmpty(g.Observacoes),
		"is_principal":    g.IsPrincipal,
	}

	saved, err := scanGuest(db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Guest{}, err
	}
	return saved, nil
}

// loadGuests returns every guest belonging to the given check-ins, ordered by
// check-in and stored position.
func loadGuests(ctx context.Context, db db, checkinIDs []uuid.UUID) ([]domain.Guest, error) {
	const q = `
		SELECT ` + guestColumns + `
		FROM hospedes
		WHERE checkin_id = ANY(@checkin_ids)
		ORDER BY checkin_id, posicao`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"checkin_ids": checkinIDs})
	if err != nil {
		return nil, fmt.Errorf("load guests: %w", err)
	}
	defer rows.Close()

	var guests []domain.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("load guests: scan: %w", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load guests: rows: %w", err)
	}
	return guests, nil
}

// scanGuest maps a single hospedes row into a domain.Guest.
// Nullable text columns come back as empty strings on the domain type.
func scanGuest(s scanner) (domain.Guest, error) {
	var (
		g          domain.Guest
		id, cid    pgtype.UUID
		nascimento pgtype.Date
		orgao, uf, cpf, endereco, cep, cidade, estado,
		pais, ddd, email, observacoes pgtype.Text
	)

	err := s.Scan(&id, &cid, &g.NomeCompleto, &nascimento, &g.Idade, &g.Documento,
		&orgao, &uf, &cpf, &endereco, &cep, &cidade, &estado, &pais,
		&ddd, &g.Telefone, &email, &observacoes, &g.IsPrincipal, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Guest{}, domain.ErrNotFound
		}
		return domain.Guest{}, err
	}

	g.ID = uuid.UUID(id.Bytes)
	g.CheckinID = uuid.UUID(cid.Bytes)
	g.DataNascimento = nascimento.Time
	g.OrgaoExpedidor = orgao.String
	g.UFDocumento = uf.String
	g.CPF = cpf.String
	g.Endereco = endereco.String
	g.CEP = cep.String
	g.Cidade = cidade.String
	g.Estado = estado.String
	g.Pais = pais.String
	g.DDD = ddd.String
	g.Email = email.String
	g.Observacoes = observacoes.String
	return g, nil
}

// nilIfEmpty converts "" into a NULL parameter so optional columns stay NULL
// rather than storing empty strings.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
