// Package mocks holds gomock doubles for the collaborators of the repaint core.
package mocks

//go:generate mockgen -destination track_mock.go -package mocks trackview/internal/track Track
//go:generate mockgen -destination repaint_mock.go -package mocks trackview/internal/repaint Surface,Autoscaler
