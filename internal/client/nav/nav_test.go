package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_PushAndBack(t *testing.T) {
	r := NewRouter(RouteLogin)

	r.Push(RouteProfile)
	r.Push(RouteOrderHistory)
	assert.Equal(t, RouteOrderHistory, r.Current())

	assert.True(t, r.Back())
	assert.Equal(t, RouteProfile, r.Current())
	assert.True(t, r.Back())
	assert.False(t, r.Back())
	assert.Equal(t, RouteLogin, r.Current())
}

func TestRouter_ReplaceDropsCurrentEntry(t *testing.T) {
	r := NewRouter(RouteLogin)
	r.Push(RouteDashboardAdmin)

	r.Replace(RouteLogin)

	assert.Equal(t, []string{RouteLogin, RouteLogin}, r.History())
	assert.True(t, r.Back())
	assert.Equal(t, RouteLogin, r.Current(), "back must not reach the replaced screen")
}

func TestRouter_OnChange(t *testing.T) {
	r := NewRouter(RouteLogin)
	var seen []string
	r.OnChange(func(p string) { seen = append(seen, p) })

	r.Push(RouteProfile)
	r.Replace(RouteOrderHistory)
	r.Back()

	assert.Equal(t, []string{RouteProfile, RouteOrderHistory, RouteLogin}, seen)
}
