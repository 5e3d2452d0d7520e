package fiber

// Package-level constants and types live in fiber.go; the scheduler's
// public surface is spread across scheduler.go (Init/Schedule/Tick/
// Dispatch), create.go, blocking.go, forkonblock.go, and release.go.
