package stripe

var NewWithAPI = newWithAPI
