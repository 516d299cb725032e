// Package domain defines the core business entities of the discussion board:
// posts (questions and answers), users with role tags and reputation, moderation
// reviews, and the private messages attached to them. Entities validate
// themselves on construction; persistence concerns live elsewhere.
package domain
