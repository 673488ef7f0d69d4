// Package control maps keyboard state to wheel motor commands.
//
// Two independent axes are tracked:
//
//   - throttle: -1 (reverse), 0 (coast), 1 (forward)
//   - braking: held while the brake key is down
//
// Releasing a throttle key only returns to coast if that key's direction is
// the one currently engaged, so releasing reverse never cancels forward.
//
// # Usage
//
//	var st control.State
//	st.Press(control.KeyForward)
//	control.Drive(st, control.DefaultGains(), wheels...)
package control
