package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS departments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		code VARCHAR(20) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(100) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'student',
		department_id UUID REFERENCES departments(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS buildings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		code VARCHAR(20) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		building_id UUID NOT NULL REFERENCES buildings(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		room_type VARCHAR(50) NOT NULL DEFAULT 'Lecture Hall',
		capacity INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(building_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
		code VARCHAR(20) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		credits INTEGER NOT NULL DEFAULT 3,
		semester INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS batches (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		year INTEGER NOT NULL,
		section VARCHAR(10) NOT NULL DEFAULT 'A',
		strength INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(department_id, name, section)
	)`,

	`CREATE TABLE IF NOT EXISTS timetables (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		batch_id UUID NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		entries JSONB NOT NULL DEFAULT '[]',
		engine_job_id VARCHAR(100),
		message TEXT,
		requested_by UUID REFERENCES users(id),
		reviewed_by UUID REFERENCES users(id),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_department_id ON users(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_building_id ON rooms(building_id)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_department_id ON courses(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_department_id ON batches(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetables_batch_id ON timetables(batch_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timetables_status ON timetables(status)`,
	`CREATE INDEX IF NOT EXISTS idx_timetables_engine_job_id ON timetables(engine_job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
