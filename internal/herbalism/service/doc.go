// Package service orchestrates the herbalism engine against storage.
//
// Services load reference data and player state, run the pure engine
// packages, and commit outcomes through the storage layer's atomic
// Apply operations. The engine itself never touches storage.
package service
