package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/christophertwo/aella/internal/models"
)

// GetWorkers lists workers ordered by name.
func (d *Database) GetWorkers(ctx context.Context) ([]models.Worker, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Worker, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT id, name, role, email FROM workers ORDER BY name COLLATE NOCASE, id")
		if err != nil {
			return nil, wrapErr(EntityWorker, "list", "", err)
		}
		defer rows.Close()
		workers := []models.Worker{}
		for rows.Next() {
			var w models.Worker
			if err := rows.Scan(&w.ID, &w.Name, &w.Role, &w.Email); err != nil {
				return nil, wrapErr(EntityWorker, "list", "", err)
			}
			workers = append(workers, w)
		}
		return workers, wrapErr(EntityWorker, "list", "", rows.Err())
	})
}

// AddWorker inserts or replaces a worker, assigning an ID when missing.
func (d *Database) AddWorker(ctx context.Context, worker models.Worker) (models.Worker, error) {
	worker.Name = strings.TrimSpace(worker.Name)
	if worker.Name == "" {
		return models.Worker{}, wrapErr(EntityWorker, "add", worker.ID, fmt.Errorf("%w: name is required", ErrInvalidData))
	}
	if worker.ID == "" {
		worker.ID = uuid.NewString()
	}
	err := d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx,
			`INSERT INTO workers (id, name, role, email) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role, email = excluded.email`,
			worker.ID, worker.Name, strings.TrimSpace(worker.Role), strings.TrimSpace(worker.Email))
		return err
	})
	if err != nil {
		return models.Worker{}, wrapErr(EntityWorker, "add", worker.ID, err)
	}
	return worker, nil
}

func (d *Database) DeleteWorker(ctx context.Context, id string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "DELETE FROM workers WHERE id = ?", id)
		return wrapErr(EntityWorker, "delete", id, requireAffected(res, err))
	})
}

// GetClients lists clients ordered by name.
func (d *Database) GetClients(ctx context.Context) ([]models.Client, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Client, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT id, name, email, phone FROM clients ORDER BY name COLLATE NOCASE, id")
		if err != nil {
			return nil, wrapErr(EntityClient, "list", "", err)
		}
		defer rows.Close()
		clients := []models.Client{}
		for rows.Next() {
			var c models.Client
			if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
				return nil, wrapErr(EntityClient, "list", "", err)
			}
			clients = append(clients, c)
		}
		return clients, wrapErr(EntityClient, "list", "", rows.Err())
	})
}

// AddClient inserts or replaces a client, assigning an ID when missing.
func (d *Database) AddClient(ctx context.Context, client models.Client) (models.Client, error) {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return models.Client{}, wrapErr(EntityClient, "add", client.ID, fmt.Errorf("%w: name is required", ErrInvalidData))
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	err := d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx,
			`INSERT INTO clients (id, name, email, phone) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, phone = excluded.phone`,
			client.ID, client.Name, strings.TrimSpace(client.Email), strings.TrimSpace(client.Phone))
		return err
	})
	if err != nil {
		return models.Client{}, wrapErr(EntityClient, "add", client.ID, err)
	}
	return client, nil
}

func (d *Database) DeleteClient(ctx context.Context, id string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
		return wrapErr(EntityClient, "delete", id, requireAffected(res, err))
	})
}
