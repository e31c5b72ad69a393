package leveling

// MinLevel is the level every user starts at
const MinLevel = 1

// DefaultCaseOpenXP is the XP granted for opening a case when not configured
const DefaultCaseOpenXP = 10
