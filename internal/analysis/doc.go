// Package analysis inspects recorded traces in the frequency domain.
//
// The chassis pitch of a car rolling over the curb rings at the body's
// bounce frequency; [Dominant] finds that peak:
//
//	hz, amp := analysis.Dominant(pitch, frameDt)
package analysis
