package world

// Listener получает уведомления об изменениях мира.
// Вызовы синхронны и происходят внутри SetBlock / Load / Generate.
type Listener interface {
	// BlockChanged вызывается после записи блока в (x, y, z)
	BlockChanged(x, y, z int)
	// LightColumnChanged вызывается, если глубина света колонки сместилась;
	// minY и maxY ограничивают затронутый вертикальный диапазон
	LightColumnChanged(x, z, minY, maxY int)
	// AllChanged вызывается после массовой замены содержимого мира
	AllChanged()
}

// ListenerFuncs адаптирует набор замыканий к интерфейсу Listener.
// Пустые поля игнорируются.
type ListenerFuncs struct {
	OnBlockChanged       func(x, y, z int)
	OnLightColumnChanged func(x, z, minY, maxY int)
	OnAllChanged         func()
}

// BlockChanged реализует Listener
func (f ListenerFuncs) BlockChanged(x, y, z int) {
	if f.OnBlockChanged != nil {
		f.OnBlockChanged(x, y, z)
	}
}

// LightColumnChanged реализует Listener
func (f ListenerFuncs) LightColumnChanged(x, z, minY, maxY int) {
	if f.OnLightColumnChanged != nil {
		f.OnLightColumnChanged(x, z, minY, maxY)
	}
}

// AllChanged реализует Listener
func (f ListenerFuncs) AllChanged() {
	if f.OnAllChanged != nil {
		f.OnAllChanged()
	}
}

// AddListener регистрирует слушателя изменений
func (l *Level) AddListener(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

func (l *Level) notifyBlockChanged(x, y, z int) {
	for _, listener := range l.listeners {
		listener.BlockChanged(x, y, z)
	}
}

func (l *Level) notifyLightColumnChanged(x, z, minY, maxY int) {
	for _, listener := range l.listeners {
		listener.LightColumnChanged(x, z, minY, maxY)
	}
}

func (l *Level) notifyAllChanged() {
	for _, listener := range l.listeners {
		listener.AllChanged()
	}
}
