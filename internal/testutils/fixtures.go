package testutils

// TestIntention is the default intention for test sessions and progress
const TestIntention = "open my heart"
