package model

// Package model defines domain data structures shared across the app:
// discovered items, status enums, job kinds and channel sources. Structures
// are plain values with explicit state transitions.
